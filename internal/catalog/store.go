package catalog

import (
	"sort"

	"github.com/kino-labs/cinerank/internal/domain"
	"github.com/kino-labs/cinerank/internal/domain/title"
)

// languageNames maps catalog language codes to display names.
var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
	"ml": "Malayalam",
	"kn": "Kannada",
}

var southIndianLanguages = map[string]bool{
	"ta": true, "te": true, "ml": true, "kn": true,
}

// Store is the read-only title catalog, built once at startup.
// Concurrent reads need no locking.
type Store struct {
	titles []title.Title
	byID   map[int]*title.Title
}

// NewStore builds a store over the given titles.
func NewStore(titles []title.Title) *Store {
	byID := make(map[int]*title.Title, len(titles))
	for i := range titles {
		byID[titles[i].ID] = &titles[i]
	}
	return &Store{titles: titles, byID: byID}
}

// Len returns the number of catalog titles.
func (s *Store) Len() int { return len(s.titles) }

// Titles returns all catalog records in original order. Callers must
// treat the slice as read-only.
func (s *Store) Titles() []title.Title { return s.titles }

// At returns the title at the given catalog index.
func (s *Store) At(idx int) *title.Title { return &s.titles[idx] }

// ByID looks up a title by its catalog id.
func (s *Store) ByID(id int) (*title.Title, error) {
	t, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrTitleNotFound
	}
	return t, nil
}

// Language pairs a catalog language code with its display name.
type Language struct {
	Code string
	Name string
}

// FilterValues enumerates the distinct values usable as filters.
type FilterValues struct {
	Languages  []Language
	Genres     []string
	Years      []int
	MediaTypes []title.Type
}

// FilterValues scans the catalog for distinct filterable values,
// sorted for stable output.
func (s *Store) FilterValues() FilterValues {
	langs := make(map[string]bool)
	genres := make(map[string]bool)
	years := make(map[int]bool)
	types := make(map[title.Type]bool)

	for i := range s.titles {
		t := &s.titles[i]
		if t.Language != "" {
			langs[t.Language] = true
		}
		for _, g := range t.Genres {
			genres[g] = true
		}
		if y := t.Year(); y != 0 {
			years[y] = true
		}
		types[t.MediaType] = true
	}

	fv := FilterValues{}
	for code := range langs {
		name := languageNames[code]
		if name == "" {
			name = code
		}
		fv.Languages = append(fv.Languages, Language{Code: code, Name: name})
	}
	sort.Slice(fv.Languages, func(i, j int) bool {
		return fv.Languages[i].Name < fv.Languages[j].Name
	})

	for g := range genres {
		fv.Genres = append(fv.Genres, g)
	}
	sort.Strings(fv.Genres)

	for y := range years {
		fv.Years = append(fv.Years, y)
	}
	sort.Ints(fv.Years)

	for mt := range types {
		fv.MediaTypes = append(fv.MediaTypes, mt)
	}
	sort.Slice(fv.MediaTypes, func(i, j int) bool {
		return fv.MediaTypes[i] < fv.MediaTypes[j]
	})

	return fv
}

// GenreCount is a genre with its number of catalog titles.
type GenreCount struct {
	Genre string
	Count int
}

// Stats summarizes the catalog composition.
type Stats struct {
	Total            int
	Movies           int
	Series           int
	Hollywood        int
	Bollywood        int
	SouthIndian      int
	TopGenres        []GenreCount
	YearDistribution map[int]int
}

// topGenreCount limits the genre breakdown in stats.
const topGenreCount = 15

// Stats computes catalog composition statistics.
func (s *Store) Stats() Stats {
	st := Stats{
		Total:            len(s.titles),
		YearDistribution: make(map[int]int),
	}
	genreCounts := make(map[string]int)

	for i := range s.titles {
		t := &s.titles[i]
		switch t.MediaType {
		case title.TypeSeries:
			st.Series++
		default:
			st.Movies++
		}

		switch {
		case t.Language == "hi":
			st.Bollywood++
		case southIndianLanguages[t.Language]:
			st.SouthIndian++
		case t.Language == "en" && t.MediaType == title.TypeMovie:
			st.Hollywood++
		}

		for _, g := range t.Genres {
			genreCounts[g]++
		}
		if y := t.Year(); y != 0 {
			st.YearDistribution[y]++
		}
	}

	for g, c := range genreCounts {
		st.TopGenres = append(st.TopGenres, GenreCount{Genre: g, Count: c})
	}
	sort.Slice(st.TopGenres, func(i, j int) bool {
		if st.TopGenres[i].Count != st.TopGenres[j].Count {
			return st.TopGenres[i].Count > st.TopGenres[j].Count
		}
		return st.TopGenres[i].Genre < st.TopGenres[j].Genre
	})
	if len(st.TopGenres) > topGenreCount {
		st.TopGenres = st.TopGenres[:topGenreCount]
	}

	return st
}
