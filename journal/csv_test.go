package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCSV(t *testing.T) (*CSV, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trading-log.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)

	return j, path
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWritesHeaderOnce(t *testing.T) {
	t.Parallel()

	j, path := newTestCSV(t)
	assert.NoError(t, j.Close())

	// Reopening an existing file must not duplicate the header.
	j2, err := NewCSV(path)
	require.NoError(t, err)
	assert.NoError(t, j2.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, header, rows[0])
}

func TestCSVRecordOrderColumns(t *testing.T) {
	t.Parallel()

	j, path := newTestCSV(t)

	rec := OrderRecord{
		Time:     time.Date(2025, 6, 2, 14, 30, 5, 0, time.UTC),
		Symbol:   "ABC",
		Side:     "buy",
		Notional: ptr(50.00),
		OrderID:  "ord-1",
		Success:  true,
		RunID:    "run-1",
	}
	assert.NoError(t, j.RecordOrder(rec))
	assert.NoError(t, j.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"2025-06-02T14:30:05Z", "ABC", "buy", "50.00", "", "ord-1", "success", "", "run-1",
	}, rows[1])
}

func TestCSVFundsDefaultsToZero(t *testing.T) {
	t.Parallel()

	j, _ := newTestCSV(t)
	t.Cleanup(func() { _ = j.Close() })

	funds, err := j.Funds()
	assert.NoError(t, err)
	assert.Equal(t, 0.0, funds)
}

func TestCSVFundsUpsertInPlace(t *testing.T) {
	t.Parallel()

	j, path := newTestCSV(t)

	// Audit row, then the sentinel, then another audit row: the
	// sentinel must be updated in place, keeping its position.
	assert.NoError(t, j.RecordOrder(OrderRecord{
		Time: time.Unix(0, 0).UTC(), Symbol: "XYZ", Side: "sell", Success: true,
	}))
	assert.NoError(t, j.SetFunds(1.10))
	assert.NoError(t, j.RecordOrder(OrderRecord{
		Time: time.Unix(0, 0).UTC(), Symbol: "ABC", Side: "buy", Success: true,
	}))
	assert.NoError(t, j.SetFunds(0))

	funds, err := j.Funds()
	assert.NoError(t, err)
	assert.Equal(t, 0.0, funds)
	assert.NoError(t, j.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 4)
	assert.Equal(t, FundsKey, rows[2][0])
	assert.Equal(t, "0.00", rows[2][1])
	assert.Equal(t, "ABC", rows[3][1])

	// Exactly one sentinel row.
	count := 0
	for _, row := range rows {
		if row[0] == FundsKey {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCSVSurvivesReopen(t *testing.T) {
	t.Parallel()

	j, path := newTestCSV(t)
	assert.NoError(t, j.SetFunds(42.42))
	assert.NoError(t, j.Close())

	j2, err := NewCSV(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j2.Close() })

	funds, err := j2.Funds()
	assert.NoError(t, err)
	assert.Equal(t, 42.42, funds)
}
