// Package reccache caches ranked recommendation lists in a key-value
// store. The cache is fail-open: any store error degrades to a miss and
// the pipeline recomputes locally.
package reccache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kino-labs/cinerank/internal/db"
	"github.com/kino-labs/cinerank/internal/domain/rank"
	"github.com/kino-labs/cinerank/internal/domain/title"
)

const cacheKeyPrefix = "cinerank:rec_cache:"

// entry is the persisted shape: only title ids and scores survive the
// round-trip; titles are rehydrated from the in-memory catalog on read.
type entry struct {
	TitleID int     `json:"title_id"`
	Score   float64 `json:"score"`
}

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// TitleReader resolves cached title ids against the live catalog.
type TitleReader interface {
	ByID(id int) (*title.Title, error)
}

// Cache stores ranked results with a TTL.
type Cache struct {
	store      store
	titles     TitleReader
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a recommendation cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	s store,
	titles TitleReader,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	return &Cache{store: s, titles: titles, ttl: ttl, cacheTotal: cacheTotal, logger: logger}
}

// Key derives the storage key from the canonical query/criteria/limit string.
func Key(canonical string) string {
	h := sha256.Sum256([]byte(canonical))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

// Get returns cached results, or false on miss or store failure.
// Entries whose title id no longer resolves (catalog file changed under
// a stale cache) invalidate the whole hit.
func (c *Cache) Get(ctx context.Context, canonical string) ([]rank.Result, bool) {
	key := Key(canonical)
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to read cached recommendations", zap.String("key", key), zap.Error(err))
		}
		c.incCache("miss")
		return nil, false
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("Failed to parse cached recommendations", zap.String("key", key), zap.Error(err))
		c.incCache("miss")
		return nil, false
	}

	results := make([]rank.Result, 0, len(entries))
	for _, e := range entries {
		t, err := c.titles.ByID(e.TitleID)
		if err != nil {
			c.incCache("miss")
			return nil, false
		}
		results = append(results, rank.NewResult(t, e.Score))
	}

	c.incCache("hit")
	return results, true
}

// Put stores results under the canonical key. Failures are logged, never surfaced.
func (c *Cache) Put(ctx context.Context, canonical string, results []rank.Result) {
	key := Key(canonical)
	entries := make([]entry, len(results))
	for i := range results {
		entries[i] = entry{TitleID: results[i].Title().ID, Score: results[i].Score()}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		c.logger.Warn("Failed to encode recommendations for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache recommendations", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
