package chi

import (
	"github.com/kino-labs/cinerank/internal/catalog"
	"github.com/kino-labs/cinerank/internal/domain/rank"
	"github.com/kino-labs/cinerank/internal/domain/title"
	"github.com/kino-labs/cinerank/internal/usecase/health"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest         = "bad_request"
	CodeValidationFailed   = "validation_failed"
	CodeTitleNotFound      = "title_not_found"
	CodeCatalogUnavailable = "catalog_unavailable"
	CodeInternalError      = "internal_error"
)

// ErrorResponse is the error body for every non-2xx response. A failed
// request is always distinguishable from an empty result list: empty
// results ship with 200 and no error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RecommendRequest is the POST /recommend body.
type RecommendRequest struct {
	Query   string            `json:"query"`
	TopK    int               `json:"top_k,omitempty"`
	Filters *RecommendFilters `json:"filters,omitempty"`
}

// RecommendFilters narrows results by catalog metadata. Explicit values
// override filters extracted from the query text.
type RecommendFilters struct {
	Genre     string   `json:"genre,omitempty"`
	Year      int      `json:"year,omitempty"`
	YearFrom  int      `json:"year_from,omitempty"`
	YearTo    int      `json:"year_to,omitempty"`
	Languages []string `json:"languages,omitempty"`
	MediaType string   `json:"media_type,omitempty"`
}

// Recommendation is one ranked hit.
type Recommendation struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Overview        string  `json:"overview"`
	PosterPath      string  `json:"poster_path,omitempty"`
	ReleaseDate     string  `json:"release_date,omitempty"`
	MediaType       string  `json:"media_type"`
	SimilarityScore float64 `json:"similarity_score"`
}

// RecommendResponse is the POST /recommend body on success. An empty
// recommendations array means no catalog match, never a masked failure.
type RecommendResponse struct {
	OriginalQuery   string           `json:"original_query"`
	EnhancedQuery   string           `json:"enhanced_query"`
	FiltersApplied  RecommendFilters `json:"filters_applied"`
	Recommendations []Recommendation `json:"recommendations"`
}

// TitleResponse is the GET /titles/{id} body.
type TitleResponse struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title,omitempty"`
	Overview      string   `json:"overview"`
	PosterPath    string   `json:"poster_path,omitempty"`
	ReleaseDate   string   `json:"release_date,omitempty"`
	Genres        []string `json:"genres"`
	Language      string   `json:"language,omitempty"`
	MediaType     string   `json:"media_type"`
	Director      string   `json:"director,omitempty"`
	Cast          []string `json:"cast,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}

// LanguageValue pairs a language code with its display name.
type LanguageValue struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// FiltersResponse enumerates the values usable in RecommendFilters.
type FiltersResponse struct {
	Languages  []LanguageValue `json:"languages"`
	Genres     []string        `json:"genres"`
	Years      []int           `json:"years"`
	MediaTypes []string        `json:"media_types"`
}

// GenreCount is one genre bucket in the stats breakdown.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// StatsResponse summarizes the catalog composition.
type StatsResponse struct {
	TotalCount              int          `json:"total_count"`
	ContentTypeDistribution TypeCounts   `json:"content_type_distribution"`
	RegionDistribution      RegionCounts `json:"region_distribution"`
	TopGenres               []GenreCount `json:"top_genres"`
	YearDistribution        map[int]int  `json:"year_distribution"`
}

// TypeCounts breaks the catalog down by media type.
type TypeCounts struct {
	Movies  int `json:"movies"`
	TVShows int `json:"tv_shows"`
}

// RegionCounts breaks the catalog down by region bucket.
type RegionCounts struct {
	Hollywood   int `json:"hollywood"`
	Bollywood   int `json:"bollywood"`
	SouthIndian int `json:"south_indian"`
}

// ComponentHealth is one component in the health report.
type ComponentHealth struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status  string          `json:"status"`
	Catalog ComponentHealth `json:"catalog"`
	Cache   ComponentHealth `json:"cache"`
}

// --- converters ---

func criteriaFromDTO(f *RecommendFilters) (rank.Criteria, error) {
	if f == nil {
		return rank.Criteria{}, nil
	}
	return rank.NewCriteria(
		f.Genre, f.Year, f.YearFrom, f.YearTo, f.Languages, title.Type(f.MediaType),
	)
}

func criteriaToDTO(c rank.Criteria) RecommendFilters {
	from, to := c.YearRange()
	return RecommendFilters{
		Genre:     c.Genre(),
		Year:      c.Year(),
		YearFrom:  from,
		YearTo:    to,
		Languages: c.Languages(),
		MediaType: string(c.MediaType()),
	}
}

func recommendationsToDTO(results []rank.Result) []Recommendation {
	recs := make([]Recommendation, len(results))
	for i := range results {
		t := results[i].Title()
		recs[i] = Recommendation{
			ID:              t.ID,
			Title:           t.Name,
			Overview:        t.Overview,
			PosterPath:      t.PosterPath,
			ReleaseDate:     t.ReleaseDate,
			MediaType:       string(t.MediaType),
			SimilarityScore: results[i].Score(),
		}
	}
	return recs
}

func titleToDTO(t *title.Title) TitleResponse {
	return TitleResponse{
		ID:            t.ID,
		Title:         t.Name,
		OriginalTitle: t.OriginalName,
		Overview:      t.Overview,
		PosterPath:    t.PosterPath,
		ReleaseDate:   t.ReleaseDate,
		Genres:        t.Genres,
		Language:      t.Language,
		MediaType:     string(t.MediaType),
		Director:      t.Director,
		Cast:          t.Cast,
		Keywords:      t.Keywords,
	}
}

func filtersToDTO(fv catalog.FilterValues) FiltersResponse {
	resp := FiltersResponse{
		Genres: fv.Genres,
		Years:  fv.Years,
	}
	for _, l := range fv.Languages {
		resp.Languages = append(resp.Languages, LanguageValue{Code: l.Code, Name: l.Name})
	}
	for _, mt := range fv.MediaTypes {
		resp.MediaTypes = append(resp.MediaTypes, string(mt))
	}
	return resp
}

func statsToDTO(st catalog.Stats) StatsResponse {
	resp := StatsResponse{
		TotalCount: st.Total,
		ContentTypeDistribution: TypeCounts{
			Movies:  st.Movies,
			TVShows: st.Series,
		},
		RegionDistribution: RegionCounts{
			Hollywood:   st.Hollywood,
			Bollywood:   st.Bollywood,
			SouthIndian: st.SouthIndian,
		},
		YearDistribution: st.YearDistribution,
	}
	for _, g := range st.TopGenres {
		resp.TopGenres = append(resp.TopGenres, GenreCount{Genre: g.Genre, Count: g.Count})
	}
	return resp
}

func healthToDTO(rep health.Report) HealthResponse {
	return HealthResponse{
		Status:  rep.Status,
		Catalog: ComponentHealth{Status: rep.Catalog.Status, Detail: rep.Catalog.Detail},
		Cache:   ComponentHealth{Status: rep.Cache.Status, Detail: rep.Cache.Detail},
	}
}
