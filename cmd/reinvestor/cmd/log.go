package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/reinvestor/config"
	"github.com/rustyeddy/reinvestor/journal"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent order attempts from the audit log",
	Long: `Print recent order attempts, newest first. Requires the SQLite
journal; the CSV journal can be inspected directly.

Example:
  reinvestor log --config reinvestor.yaml --limit 20`,
	RunE: runLog,
}

var (
	logConfigPath string
	logLimit      int
)

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().StringVarP(&logConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "number of rows to show (0 for all)")
	logCmd.MarkFlagRequired("config")
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(logConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Journal.Type != "sqlite" {
		return fmt.Errorf("log requires journal.type 'sqlite', got %q", cfg.Journal.Type)
	}

	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	orders, err := j.ListOrders(logLimit)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}

	if len(orders) == 0 {
		fmt.Println("No order attempts recorded.")
		return nil
	}

	for _, o := range orders {
		amount := ""
		if o.Notional != nil {
			amount = fmt.Sprintf("$%.2f", *o.Notional)
		} else if o.Price != nil {
			amount = fmt.Sprintf("@%.2f", *o.Price)
		}
		detail := o.OrderID
		if !o.Success {
			detail = o.ErrText
		}
		fmt.Printf("%s  %-4s %-8s %-10s %-7s %s\n",
			o.Timestamp(), o.Side, o.Symbol, amount, o.Status(), detail)
	}
	return nil
}
