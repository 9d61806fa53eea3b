package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/pricecart/backend/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  unit TEXT NOT NULL,
  keywords_json TEXT NOT NULL DEFAULT '[]',
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_position ON products(position);

CREATE TABLE IF NOT EXISTS product_prices (
  product_id TEXT NOT NULL,
  store TEXT NOT NULL,
  price REAL NOT NULL,
  PRIMARY KEY (product_id, store),
  FOREIGN KEY(product_id) REFERENCES products(id)
);
`

// SQLiteSource reads the catalog from a SQLite database.
type SQLiteSource struct {
	conn *sql.DB
}

// OpenSQLite opens (creating if needed) the catalog database at path.
// ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*SQLiteSource, error) {
	inMemory := path == ":memory:" || strings.Contains(path, "mode=memory")
	if !inMemory && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// an in-memory database lives and dies with its connection
	conn.SetMaxOpenConns(1)

	if !inMemory {
		if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	if _, err := conn.Exec(sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &SQLiteSource{conn: conn}, nil
}

// Close releases the database handle.
func (s *SQLiteSource) Close() error {
	return s.conn.Close()
}

// Seed upserts products, keeping their slice order as catalog order.
func (s *SQLiteSource) Seed(ctx context.Context, products []domain.Product) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, p := range products {
		kw, err := json.Marshal(p.Keywords)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO products (id, position, name, unit, keywords_json, updatedAt)
VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  position = excluded.position,
  name = excluded.name,
  unit = excluded.unit,
  keywords_json = excluded.keywords_json,
  updatedAt = CURRENT_TIMESTAMP`,
			p.ID, i, p.Name, p.Unit, string(kw),
		); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}

		for _, store := range domain.AllStores() {
			price, ok := p.Price(store)
			if !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
INSERT INTO product_prices (product_id, store, price) VALUES (?, ?, ?)
ON CONFLICT(product_id, store) DO UPDATE SET price = excluded.price`,
				p.ID, store.String(), price,
			); err != nil {
				return fmt.Errorf("upsert price %s/%s: %w", p.ID, store, err)
			}
		}
	}

	return tx.Commit()
}

// LoadProducts reads every product with its store prices in catalog order.
func (s *SQLiteSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	prices, err := s.loadPrices(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name, unit, keywords_json FROM products ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var id, name, unit, kwJSON string
		if err := rows.Scan(&id, &name, &unit, &kwJSON); err != nil {
			return nil, err
		}

		var keywords []string
		if err := json.Unmarshal([]byte(kwJSON), &keywords); err != nil {
			return nil, fmt.Errorf("%w: product %s keywords: %v", domain.ErrInvalidCatalog, id, err)
		}

		p, err := domain.NewProduct(id, name, unit, keywords, prices[id])
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *SQLiteSource) loadPrices(ctx context.Context) (map[string]map[domain.Store]float64, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT product_id, store, price FROM product_prices`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]map[domain.Store]float64{}
	for rows.Next() {
		var productID, storeKey string
		var price float64
		if err := rows.Scan(&productID, &storeKey, &price); err != nil {
			return nil, err
		}
		store, err := domain.ParseStore(storeKey)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s: %w", domain.ErrInvalidCatalog, productID, err)
		}
		if out[productID] == nil {
			out[productID] = map[domain.Store]float64{}
		}
		out[productID][store] = price
	}
	return out, rows.Err()
}
