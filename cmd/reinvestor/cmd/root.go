package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "reinvestor",
	Short: "An equity trading bot that rolls realized profit into a dividend fund",
	Long: `Reinvestor runs one trading decision cycle against a brokerage
account snapshot and a screener feed:

  - Sells open positions whose gain has reached the profit target
  - Accumulates realized proceeds in a durable profit ledger and
    redeploys them into the dividend instrument once past a threshold
  - Opens new positions from the screener's bullish top picks

Each invocation runs the cycle once and exits; schedule it externally
(cron or similar). Brokerage credentials come from APCA_API_KEY_ID and
APCA_API_SECRET_KEY, loaded from the environment or a .env file.`,
	SilenceUsage: true,
}

var verbose bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		// Missing .env is fine; the environment may already be set.
		_ = godotenv.Load()
	})

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the CLI's zap logger, debug-leveled when -v is set.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
