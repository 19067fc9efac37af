package chi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chiv5 "github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kino-labs/cinerank/internal/catalog"
	"github.com/kino-labs/cinerank/internal/domain/rank"
	"github.com/kino-labs/cinerank/internal/domain/title"
	rankrepo "github.com/kino-labs/cinerank/internal/repository/rank"
	"github.com/kino-labs/cinerank/internal/text"
	"github.com/kino-labs/cinerank/internal/tfidf"
	healthuc "github.com/kino-labs/cinerank/internal/usecase/health"
	libraryuc "github.com/kino-labs/cinerank/internal/usecase/library"
	recommenduc "github.com/kino-labs/cinerank/internal/usecase/recommend"
)

func testRouter(t *testing.T) http.Handler {
	return testRouterWithLimits(t, rank.Limits{})
}

func testRouterWithLimits(t *testing.T, limits rank.Limits) http.Handler {
	t.Helper()

	store := catalog.NewStore([]title.Title{
		{
			ID: 1, Name: "Steel Horizon", Overview: "Stranded crew on a failing station.",
			ReleaseDate: "2015-06-12", Genres: []string{"Science Fiction"},
			Language: "en", MediaType: title.TypeMovie,
			Document: "stranded crew survives aboard failing space station science fiction movie film english hollywood",
		},
		{
			ID: 2, Name: "Dil Aur Sadak", Overview: "Love on the road.",
			ReleaseDate: "2015-11-20", Genres: []string{"Romance", "Drama"},
			Language: "hi", MediaType: title.TypeMovie,
			Document: "strangers fall in love on a road trip romance drama movie film hindi bollywood indian",
		},
	})

	normalizer, err := text.NewNormalizer(text.AnalyzerLemma)
	if err != nil {
		t.Fatalf("normalizer: %v", err)
	}
	index, err := rankrepo.NewIndex(store, normalizer, tfidf.New(0))
	if err != nil {
		t.Fatalf("index: %v", err)
	}

	server := NewServer(
		recommenduc.New(index),
		libraryuc.New(store),
		healthuc.New(store, nil),
		limits,
		zap.NewNop(),
	)

	r := chiv5.NewRouter()
	server.Routes(r)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func TestRecommend_OK(t *testing.T) {
	h := testRouter(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/recommend",
		`{"query": "space station survival", "top_k": 5}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if body["original_query"] != "space station survival" {
		t.Errorf("original_query = %v", body["original_query"])
	}

	recs, ok := body["recommendations"].([]any)
	if !ok || len(recs) == 0 {
		t.Fatalf("expected recommendations, got %v", body["recommendations"])
	}
	first := recs[0].(map[string]any)
	if first["id"] != float64(1) {
		t.Errorf("top hit id = %v, want 1", first["id"])
	}
	if first["media_type"] != "movie" {
		t.Errorf("media_type = %v, want movie", first["media_type"])
	}
	score, _ := first["similarity_score"].(float64)
	if score <= 0 || score > 1 {
		t.Errorf("similarity_score = %v, want (0,1]", score)
	}
}

func TestRecommend_EmptyResultsIsStill200(t *testing.T) {
	h := testRouter(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/recommend",
		`{"query": "xylophone quasar zzz"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	recs, ok := body["recommendations"].([]any)
	if !ok {
		t.Fatalf("recommendations must be a (possibly empty) array, got %v", body["recommendations"])
	}
	if len(recs) != 0 {
		t.Errorf("expected no recommendations, got %d", len(recs))
	}
	if _, hasCode := body["code"]; hasCode {
		t.Error("empty results must not carry an error code")
	}
}

func TestRecommend_EmptyQuery(t *testing.T) {
	h := testRouter(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/recommend", `{"query": "   "}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["code"] != CodeValidationFailed {
		t.Errorf("code = %v, want %s", body["code"], CodeValidationFailed)
	}
}

func TestRecommend_MalformedBody(t *testing.T) {
	h := testRouter(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/recommend", `{"query": `)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["code"] != CodeBadRequest {
		t.Errorf("code = %v, want %s", body["code"], CodeBadRequest)
	}
}

func TestRecommend_ConflictingFilters(t *testing.T) {
	h := testRouter(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/recommend",
		`{"query": "space", "filters": {"year": 2015, "year_from": 2010}}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["code"] != CodeValidationFailed {
		t.Errorf("code = %v, want %s", body["code"], CodeValidationFailed)
	}
}

func TestRecommend_FiltersNarrowResults(t *testing.T) {
	h := testRouter(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/recommend",
		`{"query": "love on a road trip", "filters": {"languages": ["hi"]}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	recs := body["recommendations"].([]any)
	for _, raw := range recs {
		item := raw.(map[string]any)
		if item["id"] != float64(2) {
			t.Errorf("unexpected hit %v with hindi filter", item["id"])
		}
	}
}

func TestRecommend_ConfiguredTopKLimits(t *testing.T) {
	// Both fixture titles match "movie"; the configured bounds decide
	// how many come back.
	h := testRouterWithLimits(t, rank.Limits{DefaultTopK: 1, MaxTopK: 1})

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/recommend", `{"query": "movie"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if recs := body["recommendations"].([]any); len(recs) != 1 {
		t.Errorf("default top-k of 1 must yield 1 result, got %d", len(recs))
	}

	rec, body = doJSON(t, h, http.MethodPost, "/api/v1/recommend", `{"query": "movie", "top_k": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if recs := body["recommendations"].([]any); len(recs) != 1 {
		t.Errorf("top_k above the configured max must be clamped to 1, got %d", len(recs))
	}
}

func TestTitleByID(t *testing.T) {
	h := testRouter(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/titles/2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["title"] != "Dil Aur Sadak" {
		t.Errorf("title = %v", body["title"])
	}
	if body["media_type"] != "movie" {
		t.Errorf("media_type = %v", body["media_type"])
	}
}

func TestTitleByID_NotFound(t *testing.T) {
	h := testRouter(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/titles/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body["code"] != CodeTitleNotFound {
		t.Errorf("code = %v, want %s", body["code"], CodeTitleNotFound)
	}
}

func TestTitleByID_NonNumeric(t *testing.T) {
	h := testRouter(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/titles/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["code"] != CodeValidationFailed {
		t.Errorf("code = %v", body["code"])
	}
}

func TestFilters(t *testing.T) {
	h := testRouter(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/filters", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	langs, ok := body["languages"].([]any)
	if !ok || len(langs) != 2 {
		t.Fatalf("languages = %v", body["languages"])
	}
	first := langs[0].(map[string]any)
	if first["code"] != "en" || first["name"] != "English" {
		t.Errorf("first language = %v", first)
	}
}

func TestStats(t *testing.T) {
	h := testRouter(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["total_count"] != float64(2) {
		t.Errorf("total_count = %v, want 2", body["total_count"])
	}

	regions, ok := body["region_distribution"].(map[string]any)
	if !ok {
		t.Fatalf("region_distribution = %v", body["region_distribution"])
	}
	if regions["bollywood"] != float64(1) {
		t.Errorf("bollywood = %v, want 1", regions["bollywood"])
	}
}

func TestHealth(t *testing.T) {
	h := testRouter(t)

	rec, body := doJSON(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v", body["status"])
	}
	cache, _ := body["cache"].(map[string]any)
	if cache["status"] != "disabled" {
		t.Errorf("cache status = %v, want disabled", cache["status"])
	}
}
