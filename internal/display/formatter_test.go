package display_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricecart/backend/internal/display"
	"github.com/pricecart/backend/internal/domain"
	"github.com/pricecart/backend/internal/infrastructure/catalog"
	"github.com/pricecart/backend/internal/usecase"
)

func sampleComparison(t *testing.T, maxStores int, queries ...string) *domain.Comparison {
	t.Helper()

	cat, err := catalog.Load(context.Background(), catalog.NewMemorySource(nil))
	require.NoError(t, err)

	items := make([]domain.QueryItem, 0, len(queries))
	for _, q := range queries {
		items = append(items, domain.QueryItem{RawText: q, Query: q})
	}

	svc := usecase.NewComparisonService(cat, nil, nil, usecase.ComparisonServiceConfig{})
	cmp, err := svc.Compare(context.Background(), &domain.ComparisonRequest{Items: items, MaxStores: maxStores})
	require.NoError(t, err)
	return cmp
}

func TestPrintComparison_ContainsExpectedContent(t *testing.T) {
	var buf bytes.Buffer
	display.PrintComparison(&buf, sampleComparison(t, 2, "chicken breast", "eggs", "bananas", "xyz_not_a_product"))
	output := buf.String()

	assert.Contains(t, output, "PriceCart Comparison")
	assert.Contains(t, output, "4 items")
	assert.Contains(t, output, "Chicken Breast (Boneless Skinless)")
	assert.Contains(t, output, "$13.99")
	assert.Contains(t, output, "no match")
	assert.Contains(t, output, "Super C")
	assert.Contains(t, output, "$19.77")
	assert.Contains(t, output, "vs worst store")
	assert.NotContains(t, output, "limited by store count")
}

func TestPrintComparison_ConstrainedAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	display.PrintComparison(&buf, sampleComparison(t, 1, "chicken", "yogurt", "eggs"))
	assert.Contains(t, buf.String(), "limited by store count")

	buf.Reset()
	display.PrintComparison(&buf, sampleComparison(t, 2))
	assert.Contains(t, buf.String(), "nothing to buy")
}

func TestPrintComparisonJSON_MatchesAPIShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.PrintComparisonJSON(&buf, sampleComparison(t, 2, "bananas")))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Contains(t, resp, "id")
	assert.Contains(t, resp, "lastUpdated")
	assert.Contains(t, resp, "items")

	cart, ok := resp["cart"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, cart, "perStoreTotals")
	assert.Contains(t, cart, "bestMixed")
	assert.Contains(t, cart, "estimatedSavingsVsWorst")
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	display.PrintCatalog(&buf, catalog.ReferenceProducts())
	output := buf.String()

	assert.Contains(t, output, "7 products")
	assert.Contains(t, output, "Greek Yogurt (Plain)")
	assert.Contains(t, output, "keywords: greek, yogurt, yoghurt")

	buf.Reset()
	require.NoError(t, display.PrintCatalogJSON(&buf, nil))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestPrintStores(t *testing.T) {
	var buf bytes.Buffer
	display.PrintStores(&buf)
	assert.Contains(t, buf.String(), "Provigo")
	assert.Contains(t, buf.String(), "(superc)")

	buf.Reset()
	require.NoError(t, display.PrintStoresJSON(&buf))

	var stores []display.StoreJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &stores))
	require.Len(t, stores, domain.StoreCount)
	assert.Equal(t, domain.StoreMaxi, stores[0].ID)
	assert.Equal(t, "Super C", stores[3].Name)
}
