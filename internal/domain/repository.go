package domain

import (
	"context"
)

// CatalogRepository returns the products a query may match. The in-memory
// catalog returns every product; a database-backed implementation could
// pre-filter candidates for the query.
type CatalogRepository interface {
	Candidates(ctx context.Context, query string) ([]Product, error)
}

// CatalogSource loads the raw product list once at startup.
type CatalogSource interface {
	LoadProducts(ctx context.Context) ([]Product, error)
}

// HistoryRepository keeps recent comparisons per client
// (in-memory only; entries expire)
type HistoryRepository interface {
	Append(ctx context.Context, clientID string, entry HistoryEntry) error
	List(ctx context.Context, clientID string) ([]HistoryEntry, error)
	Clear(ctx context.Context, clientID string) error
}

// Candidates implements CatalogRepository over the frozen catalog.
func (c *Catalog) Candidates(ctx context.Context, query string) ([]Product, error) {
	return c.Products(), nil
}
