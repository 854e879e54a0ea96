// Package screener turns the tabular screener feed into Signals the
// engine can act on. Parsing is fail-closed: if the feed is missing a
// required column the run sees zero eligible signals rather than an
// error.
package screener

import (
	"context"
	"strconv"
	"strings"

	"github.com/rustyeddy/reinvestor/market"
)

// BullishMarker is the exact cell value the feed uses to flag a bullish
// signal. Anything else, including lookalike glyphs, does not match.
const BullishMarker = "✅"

// Source supplies the candidate signal list, rebuilt fresh each run.
type Source interface {
	Picks(ctx context.Context) ([]market.Signal, error)
}

// ParsePicks filters raw screener rows down to eligible signals. The
// first row is the header; columns are located by name, not position.
// A row is eligible iff TopPick (trimmed, case-insensitive) starts with
// "TOP" and Bullish Signal (trimmed) equals the marker exactly.
func ParsePicks(rows [][]string) []market.Signal {
	if len(rows) == 0 {
		return nil
	}

	idx := headerIndex(rows[0])
	topPick, ok1 := idx["TopPick"]
	bullish, ok2 := idx["Bullish Signal"]
	ticker, ok3 := idx["Ticker"]
	price, ok4 := idx["Price"]
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil
	}

	var picks []market.Signal
	for _, row := range rows[1:] {
		pick := strings.TrimSpace(cell(row, topPick))
		flag := strings.TrimSpace(cell(row, bullish))
		sym := strings.TrimSpace(cell(row, ticker))

		if !strings.HasPrefix(strings.ToUpper(pick), "TOP") || flag != BullishMarker {
			continue
		}

		sig := market.Signal{Symbol: sym}
		if raw := strings.TrimSpace(cell(row, price)); raw != "" {
			if p, err := strconv.ParseFloat(raw, 64); err == nil {
				sig.RefPrice = &p
			}
		}
		picks = append(picks, sig)
	}
	return picks
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
