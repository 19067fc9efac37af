package catalog

import (
	"reflect"
	"sort"
	"testing"

	"github.com/kino-labs/cinerank/internal/domain/title"
)

func TestFilterValues(t *testing.T) {
	store := loadFixture(t)
	fv := store.FilterValues()

	// Languages sorted by display name: English, Hindi, Tamil.
	wantLangs := []Language{
		{Code: "en", Name: "English"},
		{Code: "hi", Name: "Hindi"},
		{Code: "ta", Name: "Tamil"},
	}
	if !reflect.DeepEqual(fv.Languages, wantLangs) {
		t.Errorf("languages = %v, want %v", fv.Languages, wantLangs)
	}

	if !sort.StringsAreSorted(fv.Genres) {
		t.Errorf("genres not sorted: %v", fv.Genres)
	}
	if !sort.IntsAreSorted(fv.Years) {
		t.Errorf("years not sorted: %v", fv.Years)
	}

	wantYears := []int{2008, 2015, 2019, 2021}
	if !reflect.DeepEqual(fv.Years, wantYears) {
		t.Errorf("years = %v, want %v", fv.Years, wantYears)
	}

	wantTypes := []title.Type{title.TypeMovie, title.TypeSeries}
	if !reflect.DeepEqual(fv.MediaTypes, wantTypes) {
		t.Errorf("media types = %v, want %v", fv.MediaTypes, wantTypes)
	}
}

func TestStats(t *testing.T) {
	store := loadFixture(t)
	st := store.Stats()

	if st.Total != 5 {
		t.Errorf("total = %d, want 5", st.Total)
	}
	if st.Movies != 4 || st.Series != 1 {
		t.Errorf("movies/series = %d/%d, want 4/1", st.Movies, st.Series)
	}

	// Hollywood counts English movies only, not the English series.
	if st.Hollywood != 2 {
		t.Errorf("hollywood = %d, want 2", st.Hollywood)
	}
	if st.Bollywood != 1 {
		t.Errorf("bollywood = %d, want 1", st.Bollywood)
	}
	if st.SouthIndian != 1 {
		t.Errorf("south indian = %d, want 1", st.SouthIndian)
	}

	// Drama appears three times and leads; ties break alphabetically.
	if len(st.TopGenres) == 0 || st.TopGenres[0].Genre != "Drama" || st.TopGenres[0].Count != 3 {
		t.Errorf("top genre = %+v, want Drama/3", st.TopGenres)
	}

	if st.YearDistribution[2015] != 2 {
		t.Errorf("year 2015 count = %d, want 2", st.YearDistribution[2015])
	}
}
