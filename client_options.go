package cinerank

import (
	"time"

	"go.uber.org/zap"

	"github.com/kino-labs/cinerank/internal/domain/rank"
	"github.com/kino-labs/cinerank/internal/text"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	catalogPath   string
	maxFeatures   int
	analyzer      text.Analyzer
	limits        rank.Limits
	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// WithCatalogPath sets the catalog JSON file (default: movie_data.json).
func WithCatalogPath(path string) Option {
	return func(c *clientConfig) {
		c.catalogPath = path
	}
}

// WithMaxFeatures caps the tf-idf vocabulary size (default: 5000).
func WithMaxFeatures(n int) Option {
	return func(c *clientConfig) {
		c.maxFeatures = n
	}
}

// WithStemming switches token reduction from lemmatization to snowball
// stemming.
func WithStemming() Option {
	return func(c *clientConfig) {
		c.analyzer = text.AnalyzerStem
	}
}

// WithTopKLimits overrides the default and maximum result count applied
// to Recommend calls (defaults: 10 and 100).
func WithTopKLimits(defaultTopK, maxTopK int) Option {
	return func(c *clientConfig) {
		c.limits = rank.Limits{DefaultTopK: defaultTopK, MaxTopK: maxTopK}
	}
}

// WithRedisCache enables the Redis response cache.
func WithRedisCache(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.cacheAddrs = addrs
		c.cachePassword = password
	}
}

// WithCacheTTL sets the response cache entry lifetime (default: 5m).
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheTTL = ttl
	}
}

// WithLogger sets the logger used by the cache layer (default: no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// QueryOption configures a single Recommend call.
type QueryOption func(*queryConfig)

type queryConfig struct {
	topK    int
	filters Filters
}

// WithTopK sets the number of results to return (default: 10, max: 100).
func WithTopK(k int) QueryOption {
	return func(q *queryConfig) {
		q.topK = k
	}
}

// WithFilters narrows results by catalog metadata. Explicit filters
// override values extracted from the query text.
func WithFilters(f Filters) QueryOption {
	return func(q *queryConfig) {
		q.filters = f
	}
}
