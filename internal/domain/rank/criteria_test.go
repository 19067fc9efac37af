package rank

import (
	"testing"

	"github.com/kino-labs/cinerank/internal/domain/title"
)

func mustCriteria(t *testing.T, genre string, year, from, to int, langs []string, mt title.Type) Criteria {
	t.Helper()
	c, err := NewCriteria(genre, year, from, to, langs, mt)
	if err != nil {
		t.Fatalf("NewCriteria: %v", err)
	}
	return c
}

func TestNewCriteria_Validation(t *testing.T) {
	if _, err := NewCriteria("", 2015, 2010, 0, nil, ""); err == nil {
		t.Error("expected error for year combined with range")
	}
	if _, err := NewCriteria("", 0, 2020, 2010, nil, ""); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, err := NewCriteria("", 0, 0, 0, nil, "documentary"); err == nil {
		t.Error("expected error for invalid media type")
	}
}

func TestCriteria_Matches(t *testing.T) {
	movie := &title.Title{
		ID:          1,
		Name:        "Steel Horizon",
		ReleaseDate: "2015-06-12",
		Genres:      []string{"Science Fiction", "Thriller"},
		Language:    "en",
		MediaType:   title.TypeMovie,
	}

	tests := []struct {
		name string
		crit Criteria
		want bool
	}{
		{"empty matches all", Criteria{}, true},
		{"genre case-insensitive", mustCriteria(t, "science fiction", 0, 0, 0, nil, ""), true},
		{"genre mismatch", mustCriteria(t, "Comedy", 0, 0, 0, nil, ""), false},
		{"exact year", mustCriteria(t, "", 2015, 0, 0, nil, ""), true},
		{"wrong year", mustCriteria(t, "", 2016, 0, 0, nil, ""), false},
		{"year range hit", mustCriteria(t, "", 0, 2010, 2020, nil, ""), true},
		{"year range miss", mustCriteria(t, "", 0, 2016, 2020, nil, ""), false},
		{"open-ended range", mustCriteria(t, "", 0, 2010, 0, nil, ""), true},
		{"language hit", mustCriteria(t, "", 0, 0, 0, []string{"hi", "en"}, ""), true},
		{"language miss", mustCriteria(t, "", 0, 0, 0, []string{"ta"}, ""), false},
		{"media type hit", mustCriteria(t, "", 0, 0, 0, nil, title.TypeMovie), true},
		{"media type miss", mustCriteria(t, "", 0, 0, 0, nil, title.TypeSeries), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.crit.Matches(movie); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCriteria_CacheKeyLanguageOrderIndependent(t *testing.T) {
	a := mustCriteria(t, "Drama", 0, 0, 0, []string{"hi", "en"}, title.TypeMovie)
	b := mustCriteria(t, "drama", 0, 0, 0, []string{"en", "hi"}, title.TypeMovie)

	if a.CacheKey() != b.CacheKey() {
		t.Errorf("cache keys differ:\n%s\n%s", a.CacheKey(), b.CacheKey())
	}
}

func TestCriteria_IsEmpty(t *testing.T) {
	if !(Criteria{}).IsEmpty() {
		t.Error("zero criteria should be empty")
	}
	if mustCriteria(t, "Drama", 0, 0, 0, nil, "").IsEmpty() {
		t.Error("genre criteria should not be empty")
	}
}
