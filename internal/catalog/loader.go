// Package catalog loads the title catalog from its JSON data file and
// serves it as an immutable in-memory store.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/kino-labs/cinerank/internal/domain/title"
)

// languageDocumentMarkers enrich the searchable document with region
// words so queries like "bollywood" or "south indian" match by text.
var languageDocumentMarkers = map[string]string{
	"en": "english hollywood international",
	"hi": "hindi bollywood indian",
	"ta": "tamil south indian",
	"te": "telugu south indian",
	"ml": "malayalam south indian",
	"kn": "kannada south indian",
}

// Load reads the catalog data file and builds the store. Records with
// duplicate ids are dropped, keeping the first occurrence.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog %s contains no records", path)
	}

	titles := make([]title.Title, 0, len(records))
	seen := make(map[int]bool, len(records))
	for _, rec := range records {
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		titles = append(titles, toTitle(rec))
	}

	return NewStore(titles), nil
}

func toTitle(rec record) title.Title {
	mediaType := title.Type(rec.ContentType)
	if !mediaType.IsValid() {
		mediaType = title.TypeMovie
	}

	name := rec.Title
	if name == "" {
		name = rec.Name
	}
	originalName := rec.OriginalTitle
	if originalName == "" {
		originalName = rec.OriginalName
	}
	releaseDate := rec.ReleaseDate
	if releaseDate == "" {
		releaseDate = rec.FirstAirDate
	}

	director := rec.Director
	if director == "" && len(rec.Creators) > 0 {
		director = rec.Creators[0]
	}

	t := title.Title{
		ID:           rec.ID,
		Name:         name,
		OriginalName: originalName,
		Overview:     rec.Overview,
		PosterPath:   rec.PosterPath,
		ReleaseDate:  releaseDate,
		Genres:       rec.Genres,
		Language:     rec.Language,
		MediaType:    mediaType,
		Director:     director,
		Cast:         rec.Cast,
		Keywords:     rec.Keywords,
		Document:     rec.Document,
	}
	if t.Document == "" {
		t.Document = composeDocument(&t, rec.Creators, rec.Networks)
	}
	return t
}

// composeDocument builds the searchable text for records whose data
// file predates precomputed documents: names, overview, people,
// keywords and media/region marker words.
func composeDocument(t *title.Title, creators, networks []string) string {
	var b strings.Builder
	write := func(parts ...string) {
		for _, p := range parts {
			if p == "" {
				continue
			}
			b.WriteString(p)
			b.WriteByte(' ')
		}
	}

	write(t.Name, t.OriginalName, t.Overview)
	write(t.Genres...)
	write(t.Director)
	write(creators...)
	write(t.Cast...)
	write(t.Keywords...)
	if len(t.ReleaseDate) >= 4 {
		write(t.ReleaseDate[:4])
	}

	if t.MediaType == title.TypeSeries {
		write("tv television series show web series streaming")
		write(networks...)
	} else {
		write("movie film")
	}
	write(languageDocumentMarkers[t.Language])

	return strings.TrimSpace(b.String())
}
