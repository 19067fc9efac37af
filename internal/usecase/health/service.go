// Package health reports component readiness for the /health endpoint.
package health

import "context"

// Component statuses.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// CatalogReader reports the loaded catalog size.
type CatalogReader interface {
	Len() int
}

// CachePinger checks cache connectivity.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// Report is the aggregate health state.
type Report struct {
	Status  string
	Catalog ComponentReport
	Cache   ComponentReport
}

// ComponentReport is one component's health state.
type ComponentReport struct {
	Status string
	Detail string
}

// Service checks catalog and cache readiness.
type Service struct {
	cat   CatalogReader
	cache CachePinger // nil when the cache is disabled
}

// New creates a health service. cache may be nil.
func New(cat CatalogReader, cache CachePinger) *Service {
	return &Service{cat: cat, cache: cache}
}

// Check inspects every component. An unreachable cache degrades the
// aggregate status but never fails it: ranking works without a cache.
func (s *Service) Check(ctx context.Context) Report {
	rep := Report{Status: StatusOK}

	if n := s.cat.Len(); n > 0 {
		rep.Catalog = ComponentReport{Status: StatusOK}
	} else {
		rep.Catalog = ComponentReport{Status: StatusFailed, Detail: "catalog is empty"}
		rep.Status = StatusFailed
	}

	switch {
	case s.cache == nil:
		rep.Cache = ComponentReport{Status: StatusDisabled}
	default:
		if err := s.cache.Ping(ctx); err != nil {
			rep.Cache = ComponentReport{Status: StatusFailed, Detail: err.Error()}
			if rep.Status == StatusOK {
				rep.Status = StatusDegraded
			}
		} else {
			rep.Cache = ComponentReport{Status: StatusOK}
		}
	}

	return rep
}
