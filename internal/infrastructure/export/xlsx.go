package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pricecart/backend/internal/domain"
)

// Sheet names in the exported workbook
const (
	ItemsSheet = "Items"
	PlanSheet  = "Plan"
)

// ContentType is the MIME type of the exported workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteComparison renders cmp as an XLSX workbook with one row per item on
// the Items sheet and the store plan plus cart totals on the Plan sheet.
func WriteComparison(w io.Writer, cmp *domain.Comparison) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ItemsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(PlanSheet); err != nil {
		return err
	}

	if err := writeItems(f, cmp); err != nil {
		return fmt.Errorf("write items sheet: %w", err)
	}
	if err := writePlan(f, cmp); err != nil {
		return fmt.Errorf("write plan sheet: %w", err)
	}

	_, err := f.WriteTo(w)
	return err
}

func writeItems(f *excelize.File, cmp *domain.Comparison) error {
	headers := []any{"Query", "Product", "Confidence", "Needs Review"}
	for _, s := range domain.AllStores() {
		headers = append(headers, s.DisplayName())
	}
	headers = append(headers, "Best Store", "Best Price", "Savings vs Next")
	if err := setRow(f, ItemsSheet, 1, headers); err != nil {
		return err
	}

	for i, it := range cmp.Items {
		row := []any{it.Item.Query, "", it.Match.Confidence, it.Match.NeedsReview}
		if it.Match.Product != nil {
			row[1] = it.Match.Product.Name
		}
		for _, s := range domain.AllStores() {
			if p, ok := it.Prices[s]; ok {
				row = append(row, p.UnitPrice)
			} else {
				row = append(row, nil)
			}
		}
		row = append(row, storeCell(it.BestStore), floatCell(it.BestUnitPrice), floatCell(it.SavingsVsNext))

		if err := setRow(f, ItemsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writePlan(f *excelize.File, cmp *domain.Comparison) error {
	rows := [][]any{{"Store", "Items", "Total"}}
	for _, s := range domain.AllStores() {
		rows = append(rows, []any{
			s.DisplayName(),
			strings.Join(cmp.Plan.Assignments[s], ", "),
			cmp.Cart.PerStoreTotal[s],
		})
	}
	rows = append(rows,
		nil,
		[]any{"Strategy", string(cmp.Strategy)},
		[]any{"Max Stores", cmp.MaxStores},
		[]any{"Best Single Store", cmp.Cart.BestSingleStore.Store.DisplayName(), cmp.Cart.BestSingleStore.Total},
		[]any{"Worst Single Store", cmp.Cart.WorstSingleStore.Store.DisplayName(), cmp.Cart.WorstSingleStore.Total},
		[]any{"Plan Total", storeList(cmp.Plan.StoresUsed), cmp.Plan.Total},
		[]any{"Savings vs Worst", "", cmp.EstimatedSavingsVsWorst},
	)

	for i, row := range rows {
		if row == nil {
			continue
		}
		if err := setRow(f, PlanSheet, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func storeCell(s *domain.Store) any {
	if s == nil {
		return nil
	}
	return s.DisplayName()
}

func floatCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func storeList(stores []domain.Store) string {
	names := make([]string, 0, len(stores))
	for _, s := range stores {
		names = append(names, s.DisplayName())
	}
	return strings.Join(names, " + ")
}
