// Package library serves catalog reads that sit beside the ranking
// pipeline: title detail, filter value enumeration and statistics.
package library

import (
	"fmt"

	"github.com/kino-labs/cinerank/internal/catalog"
	"github.com/kino-labs/cinerank/internal/domain/title"
)

// CatalogReader is the read surface of the catalog store.
type CatalogReader interface {
	ByID(id int) (*title.Title, error)
	FilterValues() catalog.FilterValues
	Stats() catalog.Stats
}

// Service exposes catalog lookups. All reads hit the in-memory store,
// so no method takes a context.
type Service struct {
	cat CatalogReader
}

// New creates a library service.
func New(cat CatalogReader) *Service {
	return &Service{cat: cat}
}

// Title returns a catalog record by id.
func (s *Service) Title(id int) (*title.Title, error) {
	t, err := s.cat.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("get title %d: %w", id, err)
	}
	return t, nil
}

// FilterValues enumerates the distinct filterable values.
func (s *Service) FilterValues() catalog.FilterValues {
	return s.cat.FilterValues()
}

// Stats summarizes the catalog composition.
func (s *Service) Stats() catalog.Stats {
	return s.cat.Stats()
}
