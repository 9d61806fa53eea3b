package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricecart/backend/config"
	"github.com/pricecart/backend/internal/domain"
)

type failingSource struct{ err error }

func (f failingSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	return nil, f.err
}

func TestReferenceProducts(t *testing.T) {
	products := ReferenceProducts()
	require.Len(t, products, 7)

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
		assert.NoError(t, p.Validate())
	}
	assert.Equal(t, []string{
		"p_chicken_breast", "p_eggs_12", "p_greek_yogurt", "p_bananas",
		"p_milk_2l", "p_bread", "p_lettuce",
	}, ids)

	assert.Equal(t, 13.99, products[0].Prices[domain.StoreMaxi])
	assert.Equal(t, 16.50, products[0].Prices[domain.StoreMetro])
}

func TestLoad(t *testing.T) {
	t.Run("memory source", func(t *testing.T) {
		catalog, err := Load(context.Background(), NewMemorySource(nil))
		require.NoError(t, err)
		assert.Equal(t, 7, catalog.Len())

		p, ok := catalog.Get("p_bananas")
		require.True(t, ok)
		assert.Equal(t, "Bananas", p.Name)
	})

	t.Run("source failure is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Load(context.Background(), failingSource{err: boom})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("duplicate ids abort", func(t *testing.T) {
		products := ReferenceProducts()
		products = append(products, products[0])
		_, err := Load(context.Background(), NewMemorySource(products))
		assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
	})
}

func TestNewSource(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		src, closeFn, err := NewSource(ctx, config.CatalogConfig{Source: config.CatalogSourceMemory})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &MemorySource{}, src)
	})

	t.Run("sqlite seeds an empty database", func(t *testing.T) {
		dsn := filepath.Join(t.TempDir(), "catalog.db")
		src, closeFn, err := NewSource(ctx, config.CatalogConfig{
			Source: config.CatalogSourceSQLite,
			DSN:    dsn,
			Seed:   true,
		})
		require.NoError(t, err)
		defer closeFn()

		catalog, err := Load(ctx, src)
		require.NoError(t, err)
		assert.Equal(t, 7, catalog.Len())
	})

	t.Run("http", func(t *testing.T) {
		src, closeFn, err := NewSource(ctx, config.CatalogConfig{
			Source: config.CatalogSourceHTTP,
			URL:    "https://feed.example.com",
		})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &FeedClient{}, src)
	})

	t.Run("unknown", func(t *testing.T) {
		_, closeFn, err := NewSource(ctx, config.CatalogConfig{Source: "mongo"})
		assert.Error(t, err)
		assert.NotNil(t, closeFn)
	})
}
