package domain

import "time"

// Review threshold: matches scoring below this are flagged for confirmation.
const ReviewThreshold = 0.45

// Store-count ceiling bounds.
const (
	MinMaxStores     = 1
	MaxMaxStores     = StoreCount
	DefaultMaxStores = 2
)

// Strategy selects how an over-limit plan is collapsed.
type Strategy string

const (
	StrategyMinTotal  Strategy = "min_total"
	StrategyMinStores Strategy = "min_stores"
)

// ParseStrategy returns StrategyMinStores only for that exact string; any
// other value falls back to the default StrategyMinTotal.
func ParseStrategy(s string) Strategy {
	if Strategy(s) == StrategyMinStores {
		return StrategyMinStores
	}
	return StrategyMinTotal
}

// ClampMaxStores forces n into [MinMaxStores, MaxMaxStores].
func ClampMaxStores(n int) int {
	if n < MinMaxStores {
		return MinMaxStores
	}
	if n > MaxMaxStores {
		return MaxMaxStores
	}
	return n
}

// ParsedQuantity is the optional leading quantity/unit of a list line.
type ParsedQuantity struct {
	Qty  *float64 `json:"qty,omitempty"`
	Unit string   `json:"unit,omitempty"`
}

// QueryItem is one line of user input.
type QueryItem struct {
	RawText string          `json:"rawText,omitempty"`
	Query   string          `json:"query"`
	Parsed  *ParsedQuantity `json:"parsed,omitempty"`
}

// MatchResult is the matcher's verdict for one query.
type MatchResult struct {
	Product     *Product
	Confidence  float64
	NeedsReview bool
}

// Matched reports whether a product was found.
func (m MatchResult) Matched() bool {
	return m.Product != nil
}

// StorePrice is one store's price for a matched item.
type StorePrice struct {
	Price     float64 `json:"price"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unitPrice"`
}

// PricedItem is a query with its match and per-store prices. The Best* and
// SavingsVsNext fields are nil when the item did not match.
type PricedItem struct {
	Item          QueryItem
	Match         MatchResult
	Prices        map[Store]StorePrice
	BestStore     *Store
	BestUnitPrice *float64
	SavingsVsNext *float64
}

// Name is the label used in shopping plans: the matched product name.
func (p PricedItem) Name() string {
	if p.Match.Product == nil {
		return ""
	}
	return p.Match.Product.Name
}

// CartSummary holds totals across all priced items.
type CartSummary struct {
	PerStoreTotal    map[Store]float64
	BestSingleStore  StoreTotal
	WorstSingleStore StoreTotal
	MixedTotal       float64
}

// ShoppingPlan is the final per-store assignment of item names.
type ShoppingPlan struct {
	Assignments map[Store][]string
	StoresUsed  []Store
	Total       float64
	// Constrained is true when the store-count ceiling forced a reassignment
	// away from the per-item cheapest stores.
	Constrained bool
}

// ComparisonRequest is the normalized input to a comparison.
type ComparisonRequest struct {
	Items     []QueryItem
	MaxStores int
	Strategy  Strategy

	// ClientID and RawInput are only used to record history.
	ClientID string
	RawInput string
}

// Comparison is the full result of one request.
type Comparison struct {
	ID                      string
	LastUpdated             time.Time
	Strategy                Strategy
	MaxStores               int
	Items                   []PricedItem
	Cart                    CartSummary
	Plan                    ShoppingPlan
	EstimatedSavingsVsWorst float64
}

// HistoryEntry is a condensed record of a past comparison.
type HistoryEntry struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	Input        string    `json:"input"`
	Items        []string  `json:"items"`
	TotalSavings float64   `json:"totalSavings"`
	PlanTotal    float64   `json:"planTotal"`
	StoresUsed   []Store   `json:"storesUsed"`
	Strategy     Strategy  `json:"strategy"`
	MaxStores    int       `json:"maxStores"`
}
