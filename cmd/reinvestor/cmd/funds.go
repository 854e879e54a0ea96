package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/reinvestor/config"
)

var fundsCmd = &cobra.Command{
	Use:   "funds",
	Short: "Show the accumulated profit ledger",
	Long: `Print the profit accumulated from liquidations that has not yet been
reinvested into the dividend instrument.

Example:
  reinvestor funds --config reinvestor.yaml`,
	RunE: runFunds,
}

var fundsConfigPath string

func init() {
	rootCmd.AddCommand(fundsCmd)

	fundsCmd.Flags().StringVarP(&fundsConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	fundsCmd.MarkFlagRequired("config")
}

func runFunds(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(fundsConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	jnl, err := newJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jnl.Close()

	funds, err := jnl.Funds()
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}

	fmt.Printf("Accumulated funds: $%.2f (reinvest threshold $%.2f into %s)\n",
		funds, cfg.Engine.MinReinvest, cfg.Engine.DividendSymbol)
	return nil
}
