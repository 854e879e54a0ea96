package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/reinvestor/screener"
)

var picksCmd = &cobra.Command{
	Use:   "picks",
	Short: "Preview eligible screener signals",
	Long: `List the screener rows that would be treated as buy signals on the
next run, without touching the brokerage.

Example:
  reinvestor picks --feed screener.csv`,
	RunE: runPicks,
}

var picksFeedPath string

func init() {
	rootCmd.AddCommand(picksCmd)

	picksCmd.Flags().StringVar(&picksFeedPath, "feed", "", "path to screener CSV export (required)")
	picksCmd.MarkFlagRequired("feed")
}

func runPicks(cmd *cobra.Command, args []string) error {
	src := screener.NewCSVSource(picksFeedPath)
	picks, err := src.Picks(context.Background())
	if err != nil {
		return err
	}

	if len(picks) == 0 {
		fmt.Println("No eligible signals.")
		return nil
	}

	fmt.Printf("%d eligible signal(s):\n", len(picks))
	for _, p := range picks {
		if p.RefPrice != nil {
			fmt.Printf("  %-8s $%.2f\n", p.Symbol, *p.RefPrice)
		} else {
			fmt.Printf("  %-8s (no price)\n", p.Symbol)
		}
	}
	return nil
}
