package text

import "testing"

func TestLemmatize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// irregular nouns
		{"children", "child"},
		{"movies", "movie"},
		{"series", "series"},
		{"heroes", "hero"},
		{"wives", "wife"},

		// suffix rules
		{"watches", "watch"},
		{"wishes", "wish"},
		{"actresses", "actress"},
		{"boxes", "box"},
		{"quizzes", "quizz"},
		{"stories", "story"},
		{"thieves", "thief"},
		{"robots", "robot"},

		// guarded: -ss/-us/-is keep their s
		{"glass", "glass"},
		{"virus", "virus"},
		{"tennis", "tennis"},

		// too short to detach
		{"as", "as"},
		{"is", "is"},

		// singulars pass through
		{"movie", "movie"},
		{"drama", "drama"},
	}

	for _, tt := range tests {
		if got := Lemmatize(tt.in); got != tt.want {
			t.Errorf("Lemmatize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
