// Package rank holds the in-memory ranking index: one tf-idf vector
// per catalog title, scanned in full for every query.
package rank

import (
	"context"
	"fmt"
	"sort"

	"github.com/kino-labs/cinerank/internal/catalog"
	domrank "github.com/kino-labs/cinerank/internal/domain/rank"
	"github.com/kino-labs/cinerank/internal/text"
	"github.com/kino-labs/cinerank/internal/tfidf"
)

// Index ranks catalog titles against query vectors. Built once at
// startup; read-only afterwards, so concurrent queries need no locking.
type Index struct {
	store      *catalog.Store
	vectorizer *tfidf.Vectorizer
	normalizer *text.Normalizer
	vectors    []tfidf.Vector
}

// NewIndex fits the vectorizer on the catalog corpus and precomputes a
// vector per title. The query vocabulary is fixed here: queries and
// documents always share the same dimension space.
func NewIndex(store *catalog.Store, normalizer *text.Normalizer, vectorizer *tfidf.Vectorizer) (*Index, error) {
	titles := store.Titles()
	docs := make([][]string, len(titles))
	for i := range titles {
		docs[i] = normalizer.Tokens(titles[i].Document)
	}

	vectorizer.Fit(docs)

	vectors := make([]tfidf.Vector, len(docs))
	for i, tokens := range docs {
		vec, err := vectorizer.Transform(tokens)
		if err != nil {
			return nil, fmt.Errorf("vectorize title %d: %w", titles[i].ID, err)
		}
		vectors[i] = vec
	}

	return &Index{
		store:      store,
		vectorizer: vectorizer,
		normalizer: normalizer,
		vectors:    vectors,
	}, nil
}

// QueryVector normalizes and vectorizes query text against the fitted
// vocabulary. A query with no known terms yields a zero vector.
func (ix *Index) QueryVector(_ context.Context, query string) (tfidf.Vector, error) {
	vec, err := ix.vectorizer.Transform(ix.normalizer.Tokens(query))
	if err != nil {
		return tfidf.Vector{}, fmt.Errorf("vectorize query: %w", err)
	}
	return vec, nil
}

// TopK scans every catalog vector, keeps titles with positive
// similarity passing the criteria, sorts descending by score (ties keep
// catalog order) and truncates to k.
func (ix *Index) TopK(
	_ context.Context, query tfidf.Vector, crit domrank.Criteria, k int,
) ([]domrank.Result, error) {
	if query.IsZero() {
		return nil, nil
	}

	results := make([]domrank.Result, 0, k)
	for i := range ix.vectors {
		score := query.Dot(ix.vectors[i])
		if score <= 0 {
			continue
		}
		t := ix.store.At(i)
		if !crit.Matches(t) {
			continue
		}
		results = append(results, domrank.NewResult(t, score))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Dimensions returns the fitted vocabulary size.
func (ix *Index) Dimensions() int { return ix.vectorizer.Dimensions() }
