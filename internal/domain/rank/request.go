// Package rank defines the recommendation request, filter criteria and
// ranked result value types.
package rank

import (
	"fmt"
	"strings"

	"github.com/kino-labs/cinerank/internal/domain"
)

// Request parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length.
	MaxQueryLength = 1024
	DefaultTopK    = 10
	MaxTopK        = 100
)

// Limits bounds the result count of a request. Deployments tune these
// through config; the zero value falls back to DefaultTopK and MaxTopK.
type Limits struct {
	DefaultTopK int
	MaxTopK     int
}

func (l Limits) orDefaults() Limits {
	if l.DefaultTopK <= 0 {
		l.DefaultTopK = DefaultTopK
	}
	if l.MaxTopK <= 0 {
		l.MaxTopK = MaxTopK
	}
	return l
}

// Request is a validated recommendation query.
type Request struct {
	query string
	topK  int
	crit  Criteria
}

// NewRequest validates and normalizes recommendation parameters.
// An empty or whitespace-only query is rejected here, before any
// ranking work happens. A non-positive topK takes the default and
// anything above the maximum is clamped to it.
func NewRequest(query string, topK int, crit Criteria, lim Limits) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, domain.ErrEmptyQuery
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	lim = lim.orDefaults()
	if topK <= 0 {
		topK = lim.DefaultTopK
	}
	if topK > lim.MaxTopK {
		topK = lim.MaxTopK
	}
	return Request{query: query, topK: topK, crit: crit}, nil
}

// Query returns the free-text query.
func (r *Request) Query() string { return r.query }

// TopK returns the number of results to return.
func (r *Request) TopK() int { return r.topK }

// Criteria returns the filter criteria.
func (r *Request) Criteria() Criteria { return r.crit }
