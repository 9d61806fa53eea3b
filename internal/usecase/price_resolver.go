package usecase

import (
	"slices"

	"github.com/pricecart/backend/internal/domain"
)

// storePrice is a (store, price) pair used when ranking stores.
type storePrice struct {
	store domain.Store
	price float64
}

// ResolvePrices prices a matched query at every store and finds its cheapest
// store. Items without a product come back with an empty price map and no
// best store.
func ResolvePrices(item domain.QueryItem, match domain.MatchResult) domain.PricedItem {
	priced := domain.PricedItem{
		Item:   item,
		Match:  match,
		Prices: map[domain.Store]domain.StorePrice{},
	}
	if match.Product == nil {
		return priced
	}

	product := match.Product
	ranked := make([]storePrice, 0, domain.StoreCount)
	for _, s := range domain.AllStores() {
		price, ok := product.Price(s)
		if !ok {
			continue
		}
		priced.Prices[s] = domain.StorePrice{Price: price, Unit: product.Unit, UnitPrice: price}
		ranked = append(ranked, storePrice{store: s, price: price})
	}

	rankStores(ranked)
	if len(ranked) == 0 {
		return priced
	}

	best := ranked[0]
	priced.BestStore = &best.store
	priced.BestUnitPrice = &best.price
	if len(ranked) > 1 {
		savings := Round2(ranked[1].price - best.price)
		priced.SavingsVsNext = &savings
	}
	return priced
}

// rankStores sorts cheapest first; equal prices keep store order.
func rankStores(ranked []storePrice) {
	slices.SortStableFunc(ranked, func(a, b storePrice) int {
		switch {
		case a.price < b.price:
			return -1
		case a.price > b.price:
			return 1
		default:
			return 0
		}
	})
}
