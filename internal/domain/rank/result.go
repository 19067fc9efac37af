package rank

import "github.com/kino-labs/cinerank/internal/domain/title"

// Result is a single ranked hit: a catalog title and its similarity
// score in [0, 1]. Results live for one request only.
type Result struct {
	title *title.Title
	score float64
}

// NewResult creates a ranked result.
func NewResult(t *title.Title, score float64) Result {
	return Result{title: t, score: score}
}

// Title returns the matched catalog record.
func (r *Result) Title() *title.Title { return r.title }

// Score returns the cosine similarity score.
func (r *Result) Score() float64 { return r.score }
