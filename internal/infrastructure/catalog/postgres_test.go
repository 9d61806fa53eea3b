package catalog

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSource_SeedAndLoad(t *testing.T) {
	dsn := os.Getenv("PRICECART_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PRICECART_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	src, err := NewPostgresSource(ctx, dsn)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.pool.Exec(ctx, `TRUNCATE catalog_prices, catalog_products`)
	require.NoError(t, err)

	require.NoError(t, src.Seed(ctx, ReferenceProducts()))

	loaded, err := src.LoadProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReferenceProducts(), loaded)
}
