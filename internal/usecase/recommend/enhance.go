package recommend

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kino-labs/cinerank/internal/domain/title"
)

// Extracted holds filter intent recognized inside the query text.
// Explicit request filters take precedence over extracted ones.
type Extracted struct {
	Genre     string
	Year      int
	Languages []string
	MediaType title.Type
}

var yearPattern = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

var genreKeywords = []string{
	"action", "comedy", "drama", "horror", "sci-fi", "romance", "thriller",
	"adventure", "fantasy", "animation", "documentary", "biography",
}

// regionKeywords map query words to original-language codes. Ordered:
// multi-word and more specific regions are checked first.
var regionKeywords = []struct {
	keyword   string
	languages []string
}{
	{"south indian", []string{"ta", "te", "ml", "kn"}},
	{"hollywood", []string{"en"}},
	{"bollywood", []string{"hi"}},
	{"hindi", []string{"hi"}},
	{"tamil", []string{"ta"}},
	{"telugu", []string{"te"}},
	{"malayalam", []string{"ml"}},
	{"kannada", []string{"kn"}},
	{"indian", []string{"hi", "ta", "te", "ml", "kn"}},
}

// mediaTypeKeywords map query words to a media type. Ordered so that
// "web series" wins before "series" alone would match nothing odd.
var mediaTypeKeywords = []struct {
	keyword   string
	mediaType title.Type
}{
	{"web series", title.TypeSeries},
	{"tv series", title.TypeSeries},
	{"television", title.TypeSeries},
	{"streaming", title.TypeSeries},
	{"show", title.TypeSeries},
	{"ott", title.TypeSeries},
	{"movie", title.TypeMovie},
	{"film", title.TypeMovie},
}

// moodKeywords expand feeling words into genre vocabulary, enriching
// the query text itself rather than adding filters.
var moodKeywords = []struct {
	mood      string
	expansion string
}{
	{"happy", "comedy feel-good uplifting"},
	{"sad", "drama tragedy emotional"},
	{"scary", "horror thriller suspense"},
	{"exciting", "action adventure thriller"},
	{"thoughtful", "drama philosophical thought-provoking"},
	{"romantic", "romance love story romantic comedy"},
}

// Enhance recognizes filter intent and mood vocabulary in the query.
// Returns the (possibly expanded) query text and the extracted filters.
func Enhance(query string) (string, Extracted) {
	lower := strings.ToLower(query)
	var ex Extracted

	if m := yearPattern.FindString(lower); m != "" {
		ex.Year, _ = strconv.Atoi(m)
	}

	for _, g := range genreKeywords {
		if containsWord(lower, g) {
			ex.Genre = g
			break
		}
	}
	// Catalog genre names are TMDB's; map the spoken forms onto them.
	switch ex.Genre {
	case "sci-fi":
		ex.Genre = "science fiction"
	case "biography":
		ex.Genre = "history"
	}

	for _, r := range regionKeywords {
		if containsWord(lower, r.keyword) {
			ex.Languages = r.languages
			break
		}
	}

	for _, mt := range mediaTypeKeywords {
		if containsWord(lower, mt.keyword) {
			ex.MediaType = mt.mediaType
			break
		}
	}

	enhanced := query
	for _, m := range moodKeywords {
		if containsWord(lower, m.mood) {
			enhanced = enhanced + " " + m.expansion
			break
		}
	}

	return enhanced, ex
}

// containsWord reports whether phrase occurs in text on word boundaries.
// A trailing plural "s" on the last word still counts ("movies", "thrillers").
func containsWord(text, phrase string) bool {
	return containsExact(text, phrase) || containsExact(text, phrase+"s")
}

func containsExact(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		idx = start + 1
	}
}

func boundaryBefore(text string, i int) bool {
	return i == 0 || !isWordChar(text[i-1])
}

func boundaryAfter(text string, i int) bool {
	return i == len(text) || !isWordChar(text[i])
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-'
}
