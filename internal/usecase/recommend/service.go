// Package recommend orchestrates the query-to-ranking pipeline:
// enhance, vectorize, rank, filter, truncate, cache.
package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/kino-labs/cinerank/internal/domain/rank"
	"github.com/kino-labs/cinerank/internal/metrics"
)

// Outcome is the result of one recommendation request.
type Outcome struct {
	Results       []rank.Result
	EnhancedQuery string
	Applied       rank.Criteria
	CacheHit      bool
}

// Service handles recommendation queries over the fixed catalog.
type Service struct {
	ranker Ranker
	cache  Cache
}

// New creates a recommendation service.
func New(ranker Ranker) *Service {
	return &Service{ranker: ranker}
}

// WithCache attaches an optional response cache.
func (s *Service) WithCache(cache Cache) *Service {
	s.cache = cache
	return s
}

// Recommend runs the full pipeline for a validated request.
// An empty result list is a valid outcome, never an error: it means no
// catalog document shares vocabulary with the query, or no survivor
// passed the filters.
func (s *Service) Recommend(ctx context.Context, req *rank.Request) (Outcome, error) {
	start := time.Now()

	enhanced, extracted := Enhance(req.Query())
	crit, err := mergeCriteria(req.Criteria(), extracted)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{EnhancedQuery: enhanced, Applied: crit}
	canonical := fmt.Sprintf("%s|%s|%d", enhanced, crit.CacheKey(), req.TopK())

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, canonical); ok {
			outcome.Results = cached
			outcome.CacheHit = true
			s.observe(start, cached)
			return outcome, nil
		}
	}

	qvec, err := s.ranker.QueryVector(ctx, enhanced)
	if err != nil {
		return Outcome{}, fmt.Errorf("vectorize query: %w", err)
	}
	if qvec.IsZero() {
		s.observe(start, nil)
		return outcome, nil
	}

	results, err := s.ranker.TopK(ctx, qvec, crit, req.TopK())
	if err != nil {
		return Outcome{}, fmt.Errorf("rank catalog: %w", err)
	}
	outcome.Results = results

	if s.cache != nil {
		s.cache.Put(ctx, canonical, results)
	}

	s.observe(start, results)
	return outcome, nil
}

// mergeCriteria overlays explicit request filters on the ones extracted
// from the query text; explicit values win per field.
func mergeCriteria(explicit rank.Criteria, ex Extracted) (rank.Criteria, error) {
	genre := explicit.Genre()
	if genre == "" {
		genre = ex.Genre
	}

	year := explicit.Year()
	yearFrom, yearTo := explicit.YearRange()
	if year == 0 && yearFrom == 0 && yearTo == 0 {
		year = ex.Year
	}

	languages := explicit.Languages()
	if len(languages) == 0 {
		languages = ex.Languages
	}

	mediaType := explicit.MediaType()
	if mediaType == "" {
		mediaType = ex.MediaType
	}

	crit, err := rank.NewCriteria(genre, year, yearFrom, yearTo, languages, mediaType)
	if err != nil {
		return rank.Criteria{}, fmt.Errorf("merge filters: %w", err)
	}
	return crit, nil
}

func (s *Service) observe(start time.Time, results []rank.Result) {
	outcome := "results"
	if len(results) == 0 {
		outcome = "empty"
	}
	metrics.RecommendQueriesTotal.WithLabelValues(outcome).Inc()
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
}
