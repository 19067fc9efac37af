package recommend

import (
	"context"

	"github.com/kino-labs/cinerank/internal/domain/rank"
	"github.com/kino-labs/cinerank/internal/tfidf"
)

// Ranker vectorizes query text and scans the catalog for the best matches.
type Ranker interface {
	QueryVector(ctx context.Context, query string) (tfidf.Vector, error)
	TopK(ctx context.Context, query tfidf.Vector, crit rank.Criteria, k int) ([]rank.Result, error)
}

// Cache stores ranked result lists keyed by their canonical request
// string. Implementations must be fail-open: a broken cache reports
// misses, never errors.
type Cache interface {
	Get(ctx context.Context, canonical string) ([]rank.Result, bool)
	Put(ctx context.Context, canonical string, results []rank.Result)
}
