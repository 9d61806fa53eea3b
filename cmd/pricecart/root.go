package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pricecart/backend/config"
	"github.com/pricecart/backend/internal/domain"
	"github.com/pricecart/backend/internal/infrastructure/catalog"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitInvalidArgs = 2
)

var (
	flagJSON bool

	cliStdin io.Reader = os.Stdin
)

// errInvalidArgs marks usage errors so they exit with ExitInvalidArgs.
var errInvalidArgs = errors.New("invalid arguments")

var rootCmd = &cobra.Command{
	Use:   "pricecart",
	Short: "Compare grocery prices across Maxi, Metro, Provigo and Super C",
	Long: "Match a shopping list against the price catalog, find the cheapest store for\n" +
		"every item and build a plan that visits at most --max-stores stores.",
	Example: `  pricecart compare "2 kg chicken breast" eggs bananas
  pricecart compare --file list.txt --max-stores 1 --strategy min_stores
  cat list.txt | pricecart compare --json
  pricecart compare milk bread --xlsx plan.xlsx
  pricecart catalog --json
  pricecart stores`,
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}

func runCLI(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	resetCLIState()
	cliStdin = stdin

	setCommandIO(rootCmd, stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, errInvalidArgs) {
			return ExitInvalidArgs
		}
		return ExitError
	}
	return ExitSuccess
}

func setCommandIO(cmd *cobra.Command, stdout, stderr io.Writer) {
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	for _, child := range cmd.Commands() {
		setCommandIO(child, stdout, stderr)
	}
}

func resetCLIState() {
	flagJSON = false
	flagFile = ""
	flagMaxStores = domain.DefaultMaxStores
	flagStrategy = string(domain.StrategyMinTotal)
	flagXLSX = ""
}

func invalidArgsError(format string, a ...any) error {
	return fmt.Errorf("%w: %s", errInvalidArgs, fmt.Sprintf(format, a...))
}

// isTTY reports whether r is an interactive terminal.
func isTTY(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// loadCatalog opens the catalog configured through PRICECART_* variables,
// .env or config.yaml; without configuration it is the reference catalog.
func loadCatalog(ctx context.Context) (*domain.Catalog, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	source, closeSource, err := catalog.NewSource(ctx, cfg.Catalog)
	if err != nil {
		return nil, nil, err
	}

	cat, err := catalog.Load(ctx, source)
	if err != nil {
		_ = closeSource()
		return nil, nil, err
	}
	return cat, closeSource, nil
}
