package domain

import "errors"

var (
	// ErrEmptyQuery signals an empty or whitespace-only query, rejected before any ranking work.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrTitleNotFound signals a missing catalog title.
	ErrTitleNotFound = errors.New("title not found")
	// ErrCatalogUnavailable signals that the catalog failed to load or is empty.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrInvalidRequest signals a malformed recommendation request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFitted signals a Transform call before the vocabulary was fitted.
	ErrNotFitted = errors.New("vectorizer not fitted")
)
