package usecase

import (
	"github.com/pricecart/backend/internal/domain"
)

// Aggregate totals every store across all priced items. Unmatched items have
// no store prices and so contribute nothing. Each total is summed in full
// precision and rounded once.
func Aggregate(items []domain.PricedItem) domain.CartSummary {
	summary := domain.CartSummary{
		PerStoreTotal: make(map[domain.Store]float64, domain.StoreCount),
	}

	for _, s := range domain.AllStores() {
		total := 0.0
		for _, it := range items {
			if p, ok := it.Prices[s]; ok {
				total += p.UnitPrice
			}
		}
		summary.PerStoreTotal[s] = Round2(total)
	}

	stores := domain.AllStores()
	best := domain.StoreTotal{Store: stores[0], Total: summary.PerStoreTotal[stores[0]]}
	worst := best
	for _, s := range stores[1:] {
		total := summary.PerStoreTotal[s]
		if total < best.Total {
			best = domain.StoreTotal{Store: s, Total: total}
		}
		if total > worst.Total {
			worst = domain.StoreTotal{Store: s, Total: total}
		}
	}
	summary.BestSingleStore = best
	summary.WorstSingleStore = worst

	mixed := 0.0
	for _, it := range items {
		if it.BestUnitPrice != nil {
			mixed += *it.BestUnitPrice
		}
	}
	summary.MixedTotal = Round2(mixed)

	return summary
}
