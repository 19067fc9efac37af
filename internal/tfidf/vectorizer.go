// Package tfidf implements term-frequency / inverse-document-frequency
// vectorization with a vocabulary fixed at fit time.
//
// Weighting matches the reference matrix the catalog was built with:
// smoothed idf ln((1+n)/(1+df)) + 1, raw term counts, L2-normalized
// output vectors. Cosine similarity between two vectors is therefore a
// plain dot product.
package tfidf

import (
	"math"
	"sort"

	"github.com/kino-labs/cinerank/internal/domain"
)

// DefaultMaxFeatures caps the vocabulary size.
const DefaultMaxFeatures = 5000

// Vector is a sparse, L2-normalized term-weight vector.
type Vector struct {
	indices []int
	weights []float64
}

// IsZero reports whether the vector has no weighted terms.
// A query with no vocabulary overlap produces a zero vector.
func (v Vector) IsZero() bool { return len(v.indices) == 0 }

// Terms returns the number of non-zero terms.
func (v Vector) Terms() int { return len(v.indices) }

// Dot computes the dot product of two sparse vectors. Both sides are
// L2-normalized, so this is their cosine similarity, 0 when either
// vector is zero.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.indices) && j < len(o.indices) {
		switch {
		case v.indices[i] < o.indices[j]:
			i++
		case v.indices[i] > o.indices[j]:
			j++
		default:
			sum += v.weights[i] * o.weights[j]
			i++
			j++
		}
	}
	return sum
}

// Vectorizer converts token slices into weighted vectors. Fit once over
// the catalog corpus, then Transform is safe for concurrent use.
type Vectorizer struct {
	maxFeatures int
	vocabulary  map[string]int
	idf         []float64
	fitted      bool
}

// New creates a vectorizer. maxFeatures <= 0 selects the default cap.
func New(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Vectorizer{maxFeatures: maxFeatures}
}

// Fit builds the vocabulary and document frequencies from the corpus.
// When the corpus exceeds maxFeatures distinct terms, the terms with
// the highest total frequency win, ties broken alphabetically. Final
// vocabulary indices are assigned in alphabetical order, so identical
// corpora always produce identical matrices.
func (v *Vectorizer) Fit(docs [][]string) {
	termFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for _, tokens := range docs {
		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			termFreq[tok]++
			if !seen[tok] {
				docFreq[tok]++
				seen[tok] = true
			}
		}
	}

	terms := make([]string, 0, len(termFreq))
	for term := range termFreq {
		terms = append(terms, term)
	}

	if len(terms) > v.maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if termFreq[terms[i]] != termFreq[terms[j]] {
				return termFreq[terms[i]] > termFreq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	v.fitted = true
}

// Transform converts tokens into a sparse L2-normalized tf-idf vector.
// Tokens outside the vocabulary are ignored; an input with no known
// tokens yields a zero vector.
func (v *Vectorizer) Transform(tokens []string) (Vector, error) {
	if !v.fitted {
		return Vector{}, domain.ErrNotFitted
	}

	counts := make(map[int]float64)
	for _, tok := range tokens {
		if idx, ok := v.vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return Vector{}, nil
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	weights := make([]float64, len(indices))
	var norm float64
	for i, idx := range indices {
		w := counts[idx] * v.idf[idx]
		weights[i] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for i := range weights {
		weights[i] /= norm
	}

	return Vector{indices: indices, weights: weights}, nil
}

// Dimensions returns the fitted vocabulary size.
func (v *Vectorizer) Dimensions() int { return len(v.idf) }

// Fitted reports whether Fit has run.
func (v *Vectorizer) Fitted() bool { return v.fitted }
