package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allPrices(v float64) map[Store]float64 {
	return map[Store]float64{StoreMaxi: v, StoreMetro: v, StoreProvigo: v, StoreSuperC: v}
}

func TestNewProduct(t *testing.T) {
	t.Run("normalizes fields", func(t *testing.T) {
		prices := allPrices(1)
		p, err := NewProduct(" p_milk ", " Milk ", "each", []string{" MILK ", "", "  ", "2L"}, prices)
		require.NoError(t, err)

		assert.Equal(t, "p_milk", p.ID)
		assert.Equal(t, "Milk", p.Name)
		assert.Equal(t, []string{"milk", "2l"}, p.Keywords)

		prices[StoreMaxi] = 99
		price, ok := p.Price(StoreMaxi)
		assert.True(t, ok)
		assert.Equal(t, 1.0, price, "prices must be copied")
	})

	tests := []struct {
		name      string
		id        string
		prices    map[Store]float64
		wantStore bool
	}{
		{name: "empty id", id: " ", prices: allPrices(1)},
		{name: "missing store", id: "p", prices: map[Store]float64{StoreMaxi: 1, StoreMetro: 1, StoreProvigo: 1}},
		{name: "negative price", id: "p", prices: map[Store]float64{StoreMaxi: 1, StoreMetro: -1, StoreProvigo: 1, StoreSuperC: 1}},
		{name: "unknown store", id: "p", prices: map[Store]float64{StoreMaxi: 1, StoreMetro: 1, StoreProvigo: 1, StoreSuperC: 1, Store(5): 1}, wantStore: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.id, "Name", "each", nil, tt.prices)
			assert.True(t, errors.Is(err, ErrInvalidCatalog))
			assert.Equal(t, tt.wantStore, errors.Is(err, ErrUnknownStore))
		})
	}

	t.Run("zero price is allowed", func(t *testing.T) {
		_, err := NewProduct("p_free", "Free", "each", nil, allPrices(0))
		assert.NoError(t, err)
	})
}

func TestNewCatalog(t *testing.T) {
	a, err := NewProduct("p_a", "A", "each", []string{"a"}, allPrices(1))
	require.NoError(t, err)
	b, err := NewProduct("p_b", "B", "each", []string{"b"}, allPrices(2))
	require.NoError(t, err)

	t.Run("keeps order and looks up by id", func(t *testing.T) {
		cat, err := NewCatalog([]Product{b, a})
		require.NoError(t, err)

		assert.Equal(t, 2, cat.Len())
		assert.Equal(t, "p_b", cat.Products()[0].ID)

		got, ok := cat.Get("p_a")
		assert.True(t, ok)
		assert.Equal(t, "A", got.Name)
		_, ok = cat.Get("p_missing")
		assert.False(t, ok)

		candidates, err := cat.Candidates(context.Background(), "anything")
		require.NoError(t, err)
		assert.Equal(t, cat.Products(), candidates)
	})

	t.Run("is isolated from its input", func(t *testing.T) {
		products := []Product{a}
		cat, err := NewCatalog(products)
		require.NoError(t, err)

		products[0].Keywords[0] = "changed"
		products[0].Prices[StoreMaxi] = 42
		got, _ := cat.Get("p_a")
		assert.Equal(t, []string{"a"}, got.Keywords)
		assert.Equal(t, 1.0, got.Prices[StoreMaxi])
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := NewCatalog([]Product{a, b, a})
		assert.True(t, errors.Is(err, ErrInvalidCatalog))
		assert.Contains(t, err.Error(), "duplicate product id p_a")
	})

	t.Run("rejects invalid products", func(t *testing.T) {
		_, err := NewCatalog([]Product{{ID: "p_bad", Prices: allPrices(-1)}})
		assert.True(t, errors.Is(err, ErrInvalidCatalog))
	})

	t.Run("empty catalog", func(t *testing.T) {
		cat, err := NewCatalog(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, cat.Len())
	})
}
