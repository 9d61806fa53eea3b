package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pricecart/backend/internal/domain"
)

// Styles for terminal output.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	priceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	savingsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// StoreJSON is the JSON output shape for a store.
type StoreJSON struct {
	ID   domain.Store `json:"id"`
	Name string       `json:"name"`
}

// PrintComparison renders a comparison as a human-readable report.
func PrintComparison(w io.Writer, cmp *domain.Comparison) {
	fmt.Fprintf(w, "\n%s - %s\n\n",
		headerStyle.Render("PriceCart Comparison"),
		cyanStyle.Render(fmt.Sprintf("%d items, max %d stores, %s", len(cmp.Items), cmp.MaxStores, cmp.Strategy)),
	)

	for _, it := range cmp.Items {
		printItem(w, it)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, titleStyle.Render("Store totals"))
	for _, s := range domain.AllStores() {
		marker := "  "
		if s == cmp.Cart.BestSingleStore.Store {
			marker = priceStyle.Render("* ")
		}
		fmt.Fprintf(w, "  %s%-8s %s\n", marker, s.DisplayName(), money(cmp.Cart.PerStoreTotal[s]))
	}
	fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(fmt.Sprintf(
		"best single store: %s, worst: %s (%s)",
		cmp.Cart.BestSingleStore.Store.DisplayName(),
		cmp.Cart.WorstSingleStore.Store.DisplayName(),
		money(cmp.Cart.WorstSingleStore.Total),
	)))

	title := "Shopping plan"
	if cmp.Plan.Constrained {
		title += dimStyle.Render(" (limited by store count)")
	}
	fmt.Fprintln(w, titleStyle.Render(title))
	if len(cmp.Plan.StoresUsed) == 0 {
		fmt.Fprintf(w, "  %s\n", dimStyle.Render("nothing to buy"))
	}
	for _, s := range cmp.Plan.StoresUsed {
		fmt.Fprintf(w, "  %s: %s\n", cyanStyle.Render(s.DisplayName()), strings.Join(cmp.Plan.Assignments[s], ", "))
	}
	fmt.Fprintf(w, "  Total: %s", priceStyle.Render(money(cmp.Plan.Total)))
	if cmp.EstimatedSavingsVsWorst > 0 {
		fmt.Fprintf(w, "  %s", savingsStyle.Render("saves "+money(cmp.EstimatedSavingsVsWorst)+" vs worst store"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)
}

func printItem(w io.Writer, it domain.PricedItem) {
	query := it.Item.Query
	if query == "" {
		query = "(empty)"
	}

	if it.Match.Product == nil {
		fmt.Fprintf(w, "  %s  %s\n", titleStyle.Render(query), errorStyle.Render("no match"))
		return
	}

	line := fmt.Sprintf("  %s  %s %s",
		titleStyle.Render(query),
		dimStyle.Render("->"),
		it.Match.Product.Name,
	)
	conf := fmt.Sprintf("%.0f%%", it.Match.Confidence*100)
	if it.Match.NeedsReview {
		line += " " + warningStyle.Render("["+conf+" review]")
	} else {
		line += " " + dimStyle.Render("["+conf+"]")
	}
	fmt.Fprintln(w, line)

	if it.BestStore != nil && it.BestUnitPrice != nil {
		detail := fmt.Sprintf("      best %s %s/%s",
			cyanStyle.Render(it.BestStore.DisplayName()),
			priceStyle.Render(money(*it.BestUnitPrice)),
			it.Match.Product.Unit,
		)
		if it.SavingsVsNext != nil && *it.SavingsVsNext > 0 {
			detail += " " + savingsStyle.Render("(saves "+money(*it.SavingsVsNext)+" vs next)")
		}
		fmt.Fprintln(w, detail)
	}
}

// PrintComparisonJSON renders a comparison in the same shape as the HTTP API.
func PrintComparisonJSON(w io.Writer, cmp *domain.Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(domain.NewComparisonResponse(cmp))
}

// PrintCatalog renders the product table with prices per store.
func PrintCatalog(w io.Writer, products []domain.Product) {
	fmt.Fprintf(w, "\n%s - %s\n\n",
		headerStyle.Render("PriceCart Catalog"),
		cyanStyle.Render(fmt.Sprintf("%d products", len(products))),
	)

	for _, p := range products {
		fmt.Fprintf(w, "  %s  %s\n", titleStyle.Render(p.Name), dimStyle.Render(p.ID+", per "+p.Unit))
		prices := make([]string, 0, domain.StoreCount)
		for _, s := range domain.AllStores() {
			if price, ok := p.Price(s); ok {
				prices = append(prices, fmt.Sprintf("%s %s", s.DisplayName(), priceStyle.Render(money(price))))
			}
		}
		fmt.Fprintf(w, "      %s\n", strings.Join(prices, "  "))
		if len(p.Keywords) > 0 {
			fmt.Fprintf(w, "      %s\n", dimStyle.Render("keywords: "+strings.Join(p.Keywords, ", ")))
		}
	}
	fmt.Fprintln(w)
}

// PrintCatalogJSON renders the products as JSON.
func PrintCatalogJSON(w io.Writer, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	return json.NewEncoder(w).Encode(products)
}

// PrintStores renders the compared stores in tie-break order.
func PrintStores(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render("Compared stores:"))
	for i, s := range domain.AllStores() {
		fmt.Fprintf(w, "  %s  %s %s\n",
			cyanStyle.Render(fmt.Sprintf("%d.", i+1)),
			titleStyle.Render(s.DisplayName()),
			dimStyle.Render("("+s.String()+")"),
		)
	}
	fmt.Fprintln(w)
}

// PrintStoresJSON renders the stores as JSON.
func PrintStoresJSON(w io.Writer) error {
	out := make([]StoreJSON, 0, domain.StoreCount)
	for _, s := range domain.AllStores() {
		out = append(out, StoreJSON{ID: s, Name: s.DisplayName()})
	}
	return json.NewEncoder(w).Encode(out)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
