package main

import (
	"github.com/spf13/cobra"

	"github.com/pricecart/backend/internal/display"
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "List the compared stores",
	Long:  "Stores are listed in tie-break order: when prices or totals are equal the earlier store wins.",
	Args:  cobra.NoArgs,
	RunE:  runStores,
}

func init() {
	rootCmd.AddCommand(storesCmd)
}

func runStores(cmd *cobra.Command, _ []string) error {
	if flagJSON {
		return display.PrintStoresJSON(cmd.OutOrStdout())
	}
	display.PrintStores(cmd.OutOrStdout())
	return nil
}
