package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/reinvestor/broker/alpaca"
	"github.com/rustyeddy/reinvestor/config"
	"github.com/rustyeddy/reinvestor/engine"
	"github.com/rustyeddy/reinvestor/journal"
	"github.com/rustyeddy/reinvestor/screener"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one trading decision cycle",
	Long: `Run a single liquidate / reinvest / acquire cycle using settings
from a configuration file.

Example:
  reinvestor run --config reinvestor.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	bkr, err := newBroker(cfg)
	if err != nil {
		return err
	}

	jnl, err := newJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jnl.Close()

	pause, _ := cfg.Engine.ParseOrderPause()

	eng := engine.New(bkr, jnl, screener.NewCSVSource(cfg.Screener.CSVPath), engine.Params{
		DividendSymbol: cfg.Engine.DividendSymbol,
		ProfitTarget:   cfg.Engine.ProfitTarget,
		SizingFraction: cfg.Engine.SizingFraction,
		MinReinvest:    cfg.Engine.MinReinvest,
	}, log)
	if cfg.Engine.OrderPause != "" {
		eng.SetPacer(engine.FixedDelay(pause))
	}

	rep, err := eng.Run(context.Background())
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fmt.Printf("Run %s complete\n", rep.RunID)
	fmt.Printf("  Sold:       %d (%d failed)\n", rep.Sold, rep.SellFailures)
	if rep.Reinvested > 0 {
		fmt.Printf("  Reinvested: $%.2f into %s\n", rep.Reinvested, cfg.Engine.DividendSymbol)
	}
	fmt.Printf("  Bought:     %d (%d failed, %d skipped)\n", rep.Bought, rep.BuyFailures, rep.Skipped)
	fmt.Printf("  Ledger:     $%.2f -> $%.2f\n", rep.LedgerBefore, rep.LedgerAfter)
	return nil
}

func newBroker(cfg *config.Config) (*alpaca.Client, error) {
	key := os.Getenv("APCA_API_KEY_ID")
	secret := os.Getenv("APCA_API_SECRET_KEY")
	if key == "" || secret == "" {
		return nil, fmt.Errorf("APCA_API_KEY_ID and APCA_API_SECRET_KEY must be set")
	}

	// An explicit base URL wins over the configured environment.
	baseURL := os.Getenv("APCA_API_BASE_URL")
	if baseURL == "" {
		baseURL = alpaca.LiveURL
		if cfg.Broker.Env == "paper" {
			baseURL = alpaca.PaperURL
		}
	}

	return alpaca.New(key, secret, baseURL), nil
}

func newJournal(cfg *config.Config) (journal.Journal, error) {
	if cfg.Journal.Type == "csv" {
		return journal.NewCSV(cfg.Journal.LogFile)
	}
	return journal.NewSQLite(cfg.Journal.DBPath)
}
