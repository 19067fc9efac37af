// Package title defines the immutable catalog record.
package title

import (
	"strconv"
	"strings"
)

// Type distinguishes feature films from episodic series.
// Wire values match the catalog data file ("movie", "tv").
type Type string

// Media type constants.
const (
	TypeMovie  Type = "movie"
	TypeSeries Type = "tv"
)

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	return t == TypeMovie || t == TypeSeries
}

// Title is a single catalog record. The catalog is read-only at query
// time, so Title carries no mutators.
type Title struct {
	ID           int
	Name         string
	OriginalName string
	Overview     string
	PosterPath   string
	ReleaseDate  string // YYYY-MM-DD, possibly truncated or empty
	Genres       []string
	Language     string // ISO 639-1 original language code
	MediaType    Type
	Director     string
	Cast         []string
	Keywords     []string
	Document     string // searchable text: name + overview + metadata markers
}

// Year returns the release year, or 0 when the release date is absent
// or malformed.
func (t *Title) Year() int {
	if len(t.ReleaseDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi(t.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return y
}

// HasGenre reports whether the title carries the genre, ignoring case.
// Catalog genres are stored as-is from the data file.
func (t *Title) HasGenre(genre string) bool {
	for _, g := range t.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}
