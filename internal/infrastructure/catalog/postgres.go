package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pricecart/backend/internal/domain"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS catalog_products (
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  unit TEXT NOT NULL,
  keywords TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS catalog_prices (
  product_id TEXT NOT NULL REFERENCES catalog_products(id) ON DELETE CASCADE,
  store TEXT NOT NULL,
  price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
  PRIMARY KEY (product_id, store)
);
`

// PostgresSource reads the catalog from PostgreSQL.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource connects to dsn and makes sure the catalog tables exist.
func NewPostgresSource(ctx context.Context, dsn string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

// Close releases the pool.
func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}

// Seed upserts products in one transaction, keeping slice order as catalog order.
func (s *PostgresSource) Seed(ctx context.Context, products []domain.Product) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i, p := range products {
			batch.Queue(`
INSERT INTO catalog_products (id, position, name, unit, keywords)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
  position = EXCLUDED.position,
  name = EXCLUDED.name,
  unit = EXCLUDED.unit,
  keywords = EXCLUDED.keywords`,
				p.ID, i, p.Name, p.Unit, p.Keywords)

			for _, store := range domain.AllStores() {
				price, ok := p.Price(store)
				if !ok {
					continue
				}
				batch.Queue(`
INSERT INTO catalog_prices (product_id, store, price) VALUES ($1, $2, $3)
ON CONFLICT (product_id, store) DO UPDATE SET price = EXCLUDED.price`,
					p.ID, store.String(), price)
			}
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

// LoadProducts reads every product with its store prices in catalog order.
func (s *PostgresSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.pool.Query(ctx, `
SELECT p.id, p.name, p.unit, p.keywords, pr.store, pr.price::float8
FROM catalog_products p
LEFT JOIN catalog_prices pr ON pr.product_id = p.id
ORDER BY p.position, p.id, pr.store`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	type pending struct {
		id, name, unit string
		keywords       []string
		prices         map[domain.Store]float64
	}
	var ordered []*pending
	byID := map[string]*pending{}

	for rows.Next() {
		var (
			id, name, unit string
			keywords       []string
			storeKey       *string
			price          *float64
		)
		if err := rows.Scan(&id, &name, &unit, &keywords, &storeKey, &price); err != nil {
			return nil, err
		}

		p, ok := byID[id]
		if !ok {
			p = &pending{id: id, name: name, unit: unit, keywords: keywords, prices: map[domain.Store]float64{}}
			byID[id] = p
			ordered = append(ordered, p)
		}
		if storeKey == nil || price == nil {
			continue
		}
		store, err := domain.ParseStore(*storeKey)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s: %w", domain.ErrInvalidCatalog, id, err)
		}
		p.prices[store] = *price
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(ordered))
	for _, p := range ordered {
		product, err := domain.NewProduct(p.id, p.name, p.unit, p.keywords, p.prices)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
