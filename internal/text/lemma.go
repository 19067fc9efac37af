package text

import "strings"

// irregularNouns covers plurals that suffix rules cannot reach.
var irregularNouns = map[string]string{
	"children": "child",
	"men":      "man",
	"women":    "woman",
	"feet":     "foot",
	"teeth":    "tooth",
	"geese":    "goose",
	"mice":     "mouse",
	"wives":    "wife",
	"lives":    "life",
	"heroes":   "hero",
	"zombies":  "zombie",
	"movies":   "movie",
	"series":   "series",
}

// suffixRules are WordNet-style noun detachment rules, tried in order.
var suffixRules = []struct {
	suffix      string
	replacement string
}{
	{"ches", "ch"},
	{"shes", "sh"},
	{"sses", "ss"},
	{"xes", "x"},
	{"zes", "z"},
	{"ies", "y"},
	{"ves", "f"},
	{"s", ""},
}

// Lemmatize reduces a plural noun to its singular form. Tokens it does
// not recognize pass through unchanged, matching lemmatizer behavior
// for non-nouns.
func Lemmatize(token string) string {
	if lemma, ok := irregularNouns[token]; ok {
		return lemma
	}
	for _, rule := range suffixRules {
		if !strings.HasSuffix(token, rule.suffix) {
			continue
		}
		stem := token[:len(token)-len(rule.suffix)] + rule.replacement
		if len(stem) < minTokenLength {
			return token
		}
		// Bare -s detachment must not fire on -ss/-us/-is words
		// (glass, virus, tennis).
		if rule.suffix == "s" {
			switch {
			case strings.HasSuffix(token, "ss"),
				strings.HasSuffix(token, "us"),
				strings.HasSuffix(token, "is"):
				return token
			}
		}
		return stem
	}
	return token
}
