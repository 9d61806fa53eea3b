package catalog

import (
	"context"

	"github.com/pricecart/backend/internal/domain"
)

type referenceProduct struct {
	id       string
	name     string
	keywords []string
	unit     string
	prices   [domain.StoreCount]float64 // maxi, metro, provigo, superc
}

// Reference catalog unit prices, in store order.
var referenceProducts = []referenceProduct{
	{
		id: "p_chicken_breast", name: "Chicken Breast (Boneless Skinless)",
		keywords: []string{"chicken", "breast", "boneless", "skinless"},
		unit:     "kg", prices: [...]float64{13.99, 16.50, 15.99, 14.99},
	},
	{
		id: "p_eggs_12", name: "Eggs (12)",
		keywords: []string{"eggs", "12", "dozen"},
		unit:     "each", prices: [...]float64{4.79, 5.29, 5.49, 4.49},
	},
	{
		id: "p_greek_yogurt", name: "Greek Yogurt (Plain)",
		keywords: []string{"greek", "yogurt", "yoghurt"},
		unit:     "each", prices: [...]float64{4.29, 3.99, 4.49, 4.19},
	},
	{
		id: "p_bananas", name: "Bananas",
		keywords: []string{"banana", "bananas"},
		unit:     "lb", prices: [...]float64{1.39, 1.59, 1.69, 1.29},
	},
	{
		id: "p_milk_2l", name: "Milk (2L)",
		keywords: []string{"milk", "2l", "2 l", "lactose"},
		unit:     "each", prices: [...]float64{5.49, 5.29, 5.69, 5.39},
	},
	{
		id: "p_bread", name: "Bread (Loaf)",
		keywords: []string{"bread", "loaf"},
		unit:     "each", prices: [...]float64{3.29, 3.99, 4.29, 3.49},
	},
	{
		id: "p_lettuce", name: "Lettuce (Romaine)",
		keywords: []string{"lettuce", "romaine", "salad"},
		unit:     "each", prices: [...]float64{2.79, 3.49, 3.29, 2.99},
	},
}

// ReferenceProducts returns the built-in catalog.
func ReferenceProducts() []domain.Product {
	out := make([]domain.Product, 0, len(referenceProducts))
	for _, rp := range referenceProducts {
		prices := make(map[domain.Store]float64, domain.StoreCount)
		for _, s := range domain.AllStores() {
			prices[s] = rp.prices[s]
		}
		p, err := domain.NewProduct(rp.id, rp.name, rp.unit, rp.keywords, prices)
		if err != nil {
			// the table above is static; a failure here is a programming error
			panic(err)
		}
		out = append(out, p)
	}
	return out
}

// MemorySource serves a fixed product list.
type MemorySource struct {
	products []domain.Product
}

// NewMemorySource wraps products; nil selects the reference catalog.
func NewMemorySource(products []domain.Product) *MemorySource {
	if products == nil {
		products = ReferenceProducts()
	}
	return &MemorySource{products: products}
}

// LoadProducts returns the wrapped products.
func (m *MemorySource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	return m.products, nil
}
