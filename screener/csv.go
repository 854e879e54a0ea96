package screener

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rustyeddy/reinvestor/market"
)

// CSVSource reads the screener feed from a CSV export with a header row.
type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Picks(ctx context.Context) ([]market.Signal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open screener feed: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read screener feed: %w", err)
	}

	return ParsePicks(rows), nil
}
