package domain

import (
	"slices"
	"time"
)

// ComparisonResponse is the wire shape shared by the HTTP API and the CLI's
// --json output.
type ComparisonResponse struct {
	ID          string         `json:"id"`
	LastUpdated time.Time      `json:"lastUpdated"`
	Strategy    Strategy       `json:"strategy"`
	MaxStores   int            `json:"maxStores"`
	Items       []ItemResponse `json:"items"`
	Cart        CartResponse   `json:"cart"`
}

// ItemResponse is one priced line of the comparison.
type ItemResponse struct {
	Query         string               `json:"query"`
	Parsed        *ParsedQuantity      `json:"parsed,omitempty"`
	Match         *MatchResponse       `json:"match,omitempty"`
	Prices        map[Store]StorePrice `json:"prices"`
	BestStore     *Store               `json:"bestStore,omitempty"`
	BestUnitPrice *float64             `json:"bestUnitPrice,omitempty"`
	SavingsVsNext *float64             `json:"savingsVsNext,omitempty"`
}

// MatchResponse describes the matched catalog product.
type MatchResponse struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Confidence  float64 `json:"confidence"`
	NeedsReview bool    `json:"needsReview"`
}

// CartResponse carries the cart-level totals and the selected plan.
type CartResponse struct {
	PerStoreTotals          map[Store]float64 `json:"perStoreTotals"`
	BestSingleStore         StoreTotal        `json:"bestSingleStore"`
	WorstSingleStore        StoreTotal        `json:"worstSingleStore"`
	BestMixed               BestMixedResponse `json:"bestMixed"`
	EstimatedSavingsVsWorst float64           `json:"estimatedSavingsVsWorst"`
}

// BestMixedResponse is the selected shopping plan.
type BestMixedResponse struct {
	Total       float64            `json:"total"`
	StoresUsed  []Store            `json:"storesUsed"`
	Plan        map[Store][]string `json:"plan"`
	Constrained bool               `json:"constrained"`
}

// NewComparisonResponse maps a comparison onto its wire shape. Every store
// appears in the plan (possibly with no items) and unmatched items carry an
// empty price map rather than null.
func NewComparisonResponse(c *Comparison) ComparisonResponse {
	items := make([]ItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		resp := ItemResponse{
			Query:         it.Item.Query,
			Parsed:        it.Item.Parsed,
			Prices:        make(map[Store]StorePrice, len(it.Prices)),
			BestStore:     it.BestStore,
			BestUnitPrice: it.BestUnitPrice,
			SavingsVsNext: it.SavingsVsNext,
		}
		for s, p := range it.Prices {
			resp.Prices[s] = p
		}
		if it.Match.Product != nil {
			resp.Match = &MatchResponse{
				ProductID:   it.Match.Product.ID,
				Name:        it.Match.Product.Name,
				Confidence:  it.Match.Confidence,
				NeedsReview: it.Match.NeedsReview,
			}
		}
		items = append(items, resp)
	}

	plan := make(map[Store][]string, StoreCount)
	for _, s := range AllStores() {
		plan[s] = append([]string{}, c.Plan.Assignments[s]...)
	}

	totals := make(map[Store]float64, StoreCount)
	for _, s := range AllStores() {
		totals[s] = c.Cart.PerStoreTotal[s]
	}

	storesUsed := slices.Clone(c.Plan.StoresUsed)
	if storesUsed == nil {
		storesUsed = []Store{}
	}

	return ComparisonResponse{
		ID:          c.ID,
		LastUpdated: c.LastUpdated,
		Strategy:    c.Strategy,
		MaxStores:   c.MaxStores,
		Items:       items,
		Cart: CartResponse{
			PerStoreTotals:   totals,
			BestSingleStore:  c.Cart.BestSingleStore,
			WorstSingleStore: c.Cart.WorstSingleStore,
			BestMixed: BestMixedResponse{
				Total:       c.Plan.Total,
				StoresUsed:  storesUsed,
				Plan:        plan,
				Constrained: c.Plan.Constrained,
			},
			EstimatedSavingsVsWorst: c.EstimatedSavingsVsWorst,
		},
	}
}
