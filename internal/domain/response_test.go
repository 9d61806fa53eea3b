package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComparisonResponse(t *testing.T) {
	bananas := &Product{ID: "p_bananas", Name: "Bananas", Unit: "lb", Prices: allPrices(1.29)}
	best := StoreSuperC
	price := 1.29
	savings := 0.1
	qty := 3.0

	cmp := &Comparison{
		ID:          "cmp_1",
		LastUpdated: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Strategy:    StrategyMinTotal,
		MaxStores:   2,
		Items: []PricedItem{
			{
				Item:          QueryItem{Query: "bananas", Parsed: &ParsedQuantity{Qty: &qty}},
				Match:         MatchResult{Product: bananas, Confidence: 0.6},
				Prices:        map[Store]StorePrice{StoreSuperC: {Price: 1.29, Unit: "lb", UnitPrice: 1.29}},
				BestStore:     &best,
				BestUnitPrice: &price,
				SavingsVsNext: &savings,
			},
			{
				Item:   QueryItem{Query: "xyz"},
				Match:  MatchResult{NeedsReview: true},
				Prices: map[Store]StorePrice{},
			},
		},
		Cart: CartSummary{
			PerStoreTotal:    map[Store]float64{StoreSuperC: 1.29},
			BestSingleStore:  StoreTotal{Store: StoreSuperC, Total: 1.29},
			WorstSingleStore: StoreTotal{Store: StoreMaxi, Total: 1.39},
			MixedTotal:       1.29,
		},
		Plan: ShoppingPlan{
			Assignments: map[Store][]string{StoreSuperC: {"Bananas"}},
			StoresUsed:  []Store{StoreSuperC},
			Total:       1.29,
		},
		EstimatedSavingsVsWorst: 0.1,
	}

	resp := NewComparisonResponse(cmp)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "p_bananas", resp.Items[0].Match.ProductID)
	assert.Nil(t, resp.Items[1].Match)
	assert.NotNil(t, resp.Items[1].Prices)
	assert.Len(t, resp.Cart.BestMixed.Plan, StoreCount)
	assert.Len(t, resp.Cart.PerStoreTotals, StoreCount)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "2026-01-02T03:04:05Z", wire["lastUpdated"])

	items := wire["items"].([]any)
	unmatched := items[1].(map[string]any)
	assert.Equal(t, map[string]any{}, unmatched["prices"])
	assert.NotContains(t, unmatched, "match")
	assert.NotContains(t, unmatched, "bestStore")
	assert.NotContains(t, unmatched, "parsed")

	matched := items[0].(map[string]any)
	assert.Equal(t, "superc", matched["bestStore"])
	assert.Equal(t, map[string]any{"qty": 3.0}, matched["parsed"])

	cart := wire["cart"].(map[string]any)
	mixed := cart["bestMixed"].(map[string]any)
	assert.Equal(t, []any{"superc"}, mixed["storesUsed"])
	assert.Equal(t, map[string]any{
		"maxi":    []any{},
		"metro":   []any{},
		"provigo": []any{},
		"superc":  []any{"Bananas"},
	}, mixed["plan"])
	assert.Equal(t, 0.0, cart["perStoreTotals"].(map[string]any)["metro"])
}

func TestNewComparisonResponse_EmptyPlan(t *testing.T) {
	resp := NewComparisonResponse(&Comparison{})

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"storesUsed":[]`)
	assert.Contains(t, string(data), `"items":[]`)
}
