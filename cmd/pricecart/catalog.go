package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pricecart/backend/internal/display"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List catalog products with their prices per store",
	Example: `  pricecart catalog
  PRICECART_CATALOG_SOURCE=sqlite PRICECART_CATALOG_DSN=catalog.db pricecart catalog --json`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	cat, closeCatalog, err := loadCatalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	defer closeCatalog()

	if flagJSON {
		return display.PrintCatalogJSON(cmd.OutOrStdout(), cat.Products())
	}
	display.PrintCatalog(cmd.OutOrStdout(), cat.Products())
	return nil
}
