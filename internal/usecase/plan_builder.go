package usecase

import (
	"github.com/pricecart/backend/internal/domain"
)

// BuildPlan groups matched items by store.
//
// When the per-item cheapest stores fit under maxStores the plan is exactly
// that grouping and costs summary.MixedTotal. Otherwise every store subset of
// size 1..maxStores is tried, each item is moved to its cheapest store inside
// the subset, and the best subset under the strategy wins:
//   - min_total: lowest total, then fewest stores
//   - min_stores: fewest stores, then lowest total
//
// Remaining ties keep the earlier subset (smaller first, then store order).
// Per-item BestStore values are not changed.
func BuildPlan(
	items []domain.PricedItem,
	summary domain.CartSummary,
	strategy domain.Strategy,
	maxStores int,
) domain.ShoppingPlan {
	maxStores = domain.ClampMaxStores(maxStores)

	assignments := make(map[domain.Store][]string)
	for _, it := range items {
		if it.BestStore == nil || it.Match.Product == nil {
			continue
		}
		assignments[*it.BestStore] = append(assignments[*it.BestStore], it.Name())
	}

	used := usedStores(assignments)
	if len(used) <= maxStores {
		return domain.ShoppingPlan{
			Assignments: assignments,
			StoresUsed:  used,
			Total:       summary.MixedTotal,
		}
	}

	var best *domain.ShoppingPlan
	for size := 1; size <= maxStores; size++ {
		for _, subset := range storeCombinations(domain.AllStores(), size) {
			candidate := assignWithin(items, subset)
			if best == nil || betterPlan(candidate, *best, strategy) {
				best = &candidate
			}
		}
	}

	best.Constrained = true
	return *best
}

// assignWithin sends each matched item to its cheapest store in subset
// (first store wins on equal prices) and totals the result.
func assignWithin(items []domain.PricedItem, subset []domain.Store) domain.ShoppingPlan {
	assignments := make(map[domain.Store][]string)
	total := 0.0
	for _, it := range items {
		if it.Match.Product == nil {
			continue
		}

		found := false
		var chosen domain.Store
		var chosenPrice float64
		for _, s := range subset {
			p, ok := it.Prices[s]
			if !ok {
				continue
			}
			if !found || p.UnitPrice < chosenPrice {
				found, chosen, chosenPrice = true, s, p.UnitPrice
			}
		}
		if !found {
			continue
		}

		assignments[chosen] = append(assignments[chosen], it.Name())
		total += chosenPrice
	}

	return domain.ShoppingPlan{
		Assignments: assignments,
		StoresUsed:  usedStores(assignments),
		Total:       Round2(total),
	}
}

func betterPlan(a, b domain.ShoppingPlan, strategy domain.Strategy) bool {
	fewerStores := len(a.StoresUsed) < len(b.StoresUsed)
	sameStores := len(a.StoresUsed) == len(b.StoresUsed)

	if strategy == domain.StrategyMinStores {
		if fewerStores {
			return true
		}
		return sameStores && a.Total < b.Total
	}

	if a.Total != b.Total {
		return a.Total < b.Total
	}
	return fewerStores
}

// usedStores lists stores with at least one item, in store order.
func usedStores(assignments map[domain.Store][]string) []domain.Store {
	used := make([]domain.Store, 0, len(assignments))
	for _, s := range domain.AllStores() {
		if len(assignments[s]) > 0 {
			used = append(used, s)
		}
	}
	return used
}

// storeCombinations returns all size-k subsets of stores in lexicographic
// store order.
func storeCombinations(stores []domain.Store, k int) [][]domain.Store {
	var out [][]domain.Store
	var walk func(start int, picked []domain.Store)
	walk = func(start int, picked []domain.Store) {
		if len(picked) == k {
			out = append(out, append([]domain.Store(nil), picked...))
			return
		}
		for i := start; i <= len(stores)-(k-len(picked)); i++ {
			walk(i+1, append(picked, stores[i]))
		}
	}
	walk(0, make([]domain.Store, 0, k))
	return out
}
