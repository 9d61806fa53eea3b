package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Product is an immutable catalog entry with a unit price at every store.
type Product struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Keywords []string          `json:"keywords"`
	Unit     string            `json:"unit"` // e.g. kg, lb, each
	Prices   map[Store]float64 `json:"prices"`
}

// NewProduct builds a product and checks its invariants. Keywords are
// lower-cased and trimmed; blank keywords are dropped since an empty keyword
// would be a substring of every query token.
func NewProduct(id, name, unit string, keywords []string, prices map[Store]float64) (Product, error) {
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kw = append(kw, k)
		}
	}

	p := Product{
		ID:       strings.TrimSpace(id),
		Name:     strings.TrimSpace(name),
		Keywords: kw,
		Unit:     strings.TrimSpace(unit),
		Prices:   maps.Clone(prices),
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Validate reports the first broken invariant, wrapped in ErrInvalidCatalog.
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: product with empty id", ErrInvalidCatalog)
	}
	for s := range p.Prices {
		if !s.Valid() {
			return fmt.Errorf("%w: product %s: %w", ErrInvalidCatalog, p.ID, ErrUnknownStore)
		}
	}
	for _, s := range AllStores() {
		price, ok := p.Prices[s]
		if !ok {
			return fmt.Errorf("%w: product %s has no price for store %s", ErrInvalidCatalog, p.ID, s)
		}
		if price < 0 {
			return fmt.Errorf("%w: product %s has negative price %.2f at %s", ErrInvalidCatalog, p.ID, price, s)
		}
	}
	return nil
}

// Price returns the unit price at store s.
func (p Product) Price(s Store) (float64, bool) {
	price, ok := p.Prices[s]
	return price, ok
}

// Catalog is the read-only product lookup table. It is built once at startup
// and shared by all requests without locking.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// NewCatalog validates products and freezes them in the given order. Order is
// significant: the matcher breaks score ties by catalog position.
func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %s", ErrInvalidCatalog, p.ID)
		}
		p.Keywords = slices.Clone(p.Keywords)
		p.Prices = maps.Clone(p.Prices)
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Products returns the catalog in load order. The slice is a copy; the
// products' maps and keyword slices must be treated as read-only.
func (c *Catalog) Products() []Product {
	return slices.Clone(c.products)
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Get looks a product up by id.
func (c *Catalog) Get(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}
