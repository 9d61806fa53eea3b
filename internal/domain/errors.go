package domain

import "errors"

var (
	// ErrInvalidCatalog is returned when catalog data breaks a product invariant
	// (missing store price, negative price, duplicate id, empty id)
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrUnknownStore is returned when a store key is not one of the known stores
	ErrUnknownStore = errors.New("unknown store")

	// ErrCatalogUnavailable is returned when the catalog backend cannot be reached
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrHistoryNotFound is returned when a client has no recorded comparisons
	ErrHistoryNotFound = errors.New("no comparison history")
)
