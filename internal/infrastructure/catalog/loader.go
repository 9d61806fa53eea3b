package catalog

import (
	"context"
	"fmt"
	"log"

	"github.com/pricecart/backend/config"
	"github.com/pricecart/backend/internal/domain"
)

// Load reads all products from source and freezes them into a catalog.
func Load(ctx context.Context, source domain.CatalogSource) (*domain.Catalog, error) {
	products, err := source.LoadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	catalog, err := domain.NewCatalog(products)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	log.Printf("[CATALOG] Loaded %d products", catalog.Len())
	return catalog, nil
}

// seeder is implemented by database sources that can take the reference catalog.
type seeder interface {
	LoadProducts(ctx context.Context) ([]domain.Product, error)
	Seed(ctx context.Context, products []domain.Product) error
}

// NewSource opens the source selected by cfg. The returned close function
// releases any connection and is never nil.
func NewSource(ctx context.Context, cfg config.CatalogConfig) (domain.CatalogSource, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Source {
	case "", config.CatalogSourceMemory:
		return NewMemorySource(nil), noop, nil

	case config.CatalogSourceSQLite:
		src, err := OpenSQLite(cfg.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: open sqlite: %v", domain.ErrCatalogUnavailable, err)
		}
		if err := seedIfEmpty(ctx, src, cfg.Seed); err != nil {
			_ = src.Close()
			return nil, noop, err
		}
		return src, src.Close, nil

	case config.CatalogSourcePostgres:
		src, err := NewPostgresSource(ctx, cfg.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}
		if err := seedIfEmpty(ctx, src, cfg.Seed); err != nil {
			_ = src.Close()
			return nil, noop, err
		}
		return src, src.Close, nil

	case config.CatalogSourceHTTP:
		return NewFeedClient(cfg.URL, cfg.Timeout), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown catalog source %q", cfg.Source)
}

func seedIfEmpty(ctx context.Context, src seeder, seed bool) error {
	if !seed {
		return nil
	}
	existing, err := src.LoadProducts(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	if len(existing) > 0 {
		return nil
	}
	log.Printf("[CATALOG] Empty database, seeding %d reference products", len(referenceProducts))
	return src.Seed(ctx, ReferenceProducts())
}
