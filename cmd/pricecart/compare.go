package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pricecart/backend/internal/display"
	"github.com/pricecart/backend/internal/domain"
	"github.com/pricecart/backend/internal/infrastructure/export"
	"github.com/pricecart/backend/internal/usecase"
)

var (
	flagFile      string
	flagMaxStores int
	flagStrategy  string
	flagXLSX      string
)

var compareCmd = &cobra.Command{
	Use:   "compare [items...]",
	Short: "Compare a shopping list across stores",
	Long: "Each argument is one list line, e.g. \"2 kg chicken breast\". Without arguments\n" +
		"the list is read from --file or from piped standard input.",
	Example: `  pricecart compare chicken eggs bananas
  pricecart compare --file list.txt --max-stores 3
  echo "milk, bread" | pricecart compare --json`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	f := compareCmd.Flags()
	f.StringVarP(&flagFile, "file", "f", "", "Read the shopping list from a file (- for stdin)")
	f.IntVarP(&flagMaxStores, "max-stores", "m", domain.DefaultMaxStores, "Maximum number of stores to visit (1-4)")
	f.StringVarP(&flagStrategy, "strategy", "s", string(domain.StrategyMinTotal), "Plan strategy: min_total or min_stores")
	f.StringVar(&flagXLSX, "xlsx", "", "Also write the comparison to an XLSX workbook")
}

func runCompare(cmd *cobra.Command, args []string) error {
	raw, err := readList(args)
	if err != nil {
		return err
	}

	items := usecase.CollectList(raw)
	if len(items) == 0 {
		return invalidArgsError("empty shopping list (pass items, --file, or pipe a list)")
	}

	ctx := cmd.Context()
	cat, closeCatalog, err := loadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	defer closeCatalog()

	svc := usecase.NewComparisonService(cat, nil, nil, usecase.ComparisonServiceConfig{})
	cmp, err := svc.Compare(ctx, &domain.ComparisonRequest{
		Items:     items,
		MaxStores: flagMaxStores,
		Strategy:  domain.Strategy(flagStrategy),
		RawInput:  raw,
	})
	if err != nil {
		return err
	}

	if flagXLSX != "" {
		if err := writeWorkbook(flagXLSX, cmp); err != nil {
			return fmt.Errorf("writing %s: %w", flagXLSX, err)
		}
	}

	if flagJSON {
		return display.PrintComparisonJSON(cmd.OutOrStdout(), cmp)
	}
	display.PrintComparison(cmd.OutOrStdout(), cmp)
	if flagXLSX != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved workbook to %s\n", flagXLSX)
	}
	return nil
}

// readList joins positional items into one line per argument, or reads the
// list from --file or piped stdin.
func readList(args []string) (string, error) {
	if len(args) > 0 {
		if flagFile != "" {
			return "", invalidArgsError("pass items or --file, not both")
		}
		return strings.Join(args, "\n"), nil
	}

	switch {
	case flagFile == "-":
		return readAll(cliStdin)
	case flagFile != "":
		data, err := os.ReadFile(flagFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case !isTTY(cliStdin):
		return readAll(cliStdin)
	}
	return "", nil
}

func readAll(r io.Reader) (string, error) {
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func writeWorkbook(path string, cmp *domain.Comparison) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteComparison(f, cmp); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
