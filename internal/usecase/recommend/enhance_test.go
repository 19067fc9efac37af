package recommend

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kino-labs/cinerank/internal/domain/title"
)

func TestEnhance_YearExtraction(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"bollywood movies from 2015", 2015},
		{"classics of 1994", 1994},
		{"something from 2099", 2099},
		{"1776 revolution drama", 0},  // outside 19xx/20xx
		{"affordable under 20150", 0}, // not on a word boundary
		{"no year here", 0},
	}
	for _, tt := range tests {
		_, ex := Enhance(tt.in)
		if ex.Year != tt.want {
			t.Errorf("Enhance(%q).Year = %d, want %d", tt.in, ex.Year, tt.want)
		}
	}
}

func TestEnhance_GenreAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"some action tonight", "action"},
		{"best sci-fi ever", "science fiction"},
		{"a biography please", "history"},
		{"nothing genre-like", ""},
	}
	for _, tt := range tests {
		_, ex := Enhance(tt.in)
		if ex.Genre != tt.want {
			t.Errorf("Enhance(%q).Genre = %q, want %q", tt.in, ex.Genre, tt.want)
		}
	}
}

func TestEnhance_Regions(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"south indian thrillers", []string{"ta", "te", "ml", "kn"}},
		{"classic bollywood romance", []string{"hi"}},
		{"tamil movies", []string{"ta"}},
		{"indian cinema", []string{"hi", "ta", "te", "ml", "kn"}},
		{"french films", nil},
	}
	for _, tt := range tests {
		_, ex := Enhance(tt.in)
		if !reflect.DeepEqual(ex.Languages, tt.want) {
			t.Errorf("Enhance(%q).Languages = %v, want %v", tt.in, ex.Languages, tt.want)
		}
	}
}

func TestEnhance_MediaType(t *testing.T) {
	tests := []struct {
		in   string
		want title.Type
	}{
		{"gripping web series", title.TypeSeries},
		{"a good show to binge", title.TypeSeries},
		{"feel-good movie", title.TypeMovie},
		{"classic films", title.TypeMovie},
		{"something to watch", ""},
	}
	for _, tt := range tests {
		_, ex := Enhance(tt.in)
		if ex.MediaType != tt.want {
			t.Errorf("Enhance(%q).MediaType = %q, want %q", tt.in, ex.MediaType, tt.want)
		}
	}
}

func TestEnhance_MoodExpansion(t *testing.T) {
	enhanced, _ := Enhance("something scary for tonight")
	for _, w := range []string{"horror", "thriller", "suspense"} {
		if !strings.Contains(enhanced, w) {
			t.Errorf("enhanced query missing %q: %s", w, enhanced)
		}
	}

	// Original text survives in front of the expansion.
	if !strings.HasPrefix(enhanced, "something scary for tonight") {
		t.Errorf("expansion must append, got %q", enhanced)
	}

	unchanged, _ := Enhance("space station survival")
	if unchanged != "space station survival" {
		t.Errorf("query without mood words must pass through, got %q", unchanged)
	}
}

func TestEnhance_WordBoundaries(t *testing.T) {
	// "showcase" must not trigger the "show" media type, and
	// "hollywoodland" must not trigger the hollywood region.
	_, ex := Enhance("showcase of hollywoodland history")
	if ex.MediaType != "" {
		t.Errorf("MediaType = %q, want none", ex.MediaType)
	}
	if ex.Languages != nil {
		t.Errorf("Languages = %v, want none", ex.Languages)
	}
}
