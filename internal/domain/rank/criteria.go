package rank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kino-labs/cinerank/internal/domain/title"
)

// Criteria is an optional post-ranking filter. The zero value matches
// every title. Filtering never reorders titles relative to their rank.
type Criteria struct {
	genre     string
	year      int
	yearFrom  int
	yearTo    int
	languages []string
	mediaType title.Type
}

// NewCriteria validates and creates filter criteria.
// year and yearFrom/yearTo are mutually exclusive.
func NewCriteria(
	genre string,
	year, yearFrom, yearTo int,
	languages []string,
	mediaType title.Type,
) (Criteria, error) {
	if year != 0 && (yearFrom != 0 || yearTo != 0) {
		return Criteria{}, fmt.Errorf("year and year range are mutually exclusive")
	}
	if yearFrom != 0 && yearTo != 0 && yearFrom > yearTo {
		return Criteria{}, fmt.Errorf("invalid year range %d-%d", yearFrom, yearTo)
	}
	if mediaType != "" && !mediaType.IsValid() {
		return Criteria{}, fmt.Errorf("invalid media type %q", mediaType)
	}
	return Criteria{
		genre:     genre,
		year:      year,
		yearFrom:  yearFrom,
		yearTo:    yearTo,
		languages: languages,
		mediaType: mediaType,
	}, nil
}

// Genre returns the genre filter ("" = any).
func (c Criteria) Genre() string { return c.genre }

// Year returns the exact release year filter (0 = any).
func (c Criteria) Year() int { return c.year }

// YearRange returns the inclusive release year range (0,0 = any).
func (c Criteria) YearRange() (from, to int) { return c.yearFrom, c.yearTo }

// Languages returns the accepted original language codes (empty = any).
func (c Criteria) Languages() []string { return c.languages }

// MediaType returns the media type filter ("" = any).
func (c Criteria) MediaType() title.Type { return c.mediaType }

// IsEmpty reports whether the criteria match every title.
func (c Criteria) IsEmpty() bool {
	return c.genre == "" && c.year == 0 && c.yearFrom == 0 && c.yearTo == 0 &&
		len(c.languages) == 0 && c.mediaType == ""
}

// Matches reports whether the title passes every configured filter.
func (c Criteria) Matches(t *title.Title) bool {
	if c.genre != "" && !t.HasGenre(c.genre) {
		return false
	}
	if c.year != 0 && t.Year() != c.year {
		return false
	}
	if c.yearFrom != 0 || c.yearTo != 0 {
		y := t.Year()
		if c.yearFrom != 0 && y < c.yearFrom {
			return false
		}
		if c.yearTo != 0 && y > c.yearTo {
			return false
		}
	}
	if len(c.languages) > 0 && !containsFold(c.languages, t.Language) {
		return false
	}
	if c.mediaType != "" && t.MediaType != c.mediaType {
		return false
	}
	return true
}

// CacheKey returns a canonical string for cache key derivation.
// Deterministic for equal criteria regardless of language order.
func (c Criteria) CacheKey() string {
	langs := make([]string, len(c.languages))
	copy(langs, c.languages)
	sort.Strings(langs)
	return fmt.Sprintf("g=%s|y=%d|yf=%d|yt=%d|l=%s|t=%s",
		strings.ToLower(c.genre), c.year, c.yearFrom, c.yearTo,
		strings.Join(langs, ","), c.mediaType,
	)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
