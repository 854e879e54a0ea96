package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrders(t *testing.T, j *SQLite) {
	t.Helper()

	base := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
	records := []OrderRecord{
		{Time: base, Symbol: "XYZ", Side: "sell", Price: ptr(106.00), OrderID: "o1", Success: true, RunID: "run-1"},
		{Time: base.Add(2 * time.Second), Symbol: "VIG", Side: "buy", Notional: ptr(212.00), OrderID: "o2", Success: true, RunID: "run-1"},
		{Time: base.Add(time.Hour), Symbol: "ABC", Side: "buy", Notional: ptr(50.00), Success: false, ErrText: "rejected", RunID: "run-2"},
	}
	for _, rec := range records {
		require.NoError(t, j.RecordOrder(rec))
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })
	seedOrders(t, j)

	orders, err := j.ListOrders(0)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, "ABC", orders[0].Symbol)
	assert.False(t, orders[0].Success)
	assert.Equal(t, "rejected", orders[0].ErrText)
	assert.Equal(t, "VIG", orders[1].Symbol)
	assert.Equal(t, "XYZ", orders[2].Symbol)

	require.NotNil(t, orders[2].Price)
	assert.Equal(t, 106.00, *orders[2].Price)
	assert.Nil(t, orders[2].Notional)
}

func TestListOrdersLimit(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })
	seedOrders(t, j)

	orders, err := j.ListOrders(1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ABC", orders[0].Symbol)
}

func TestListOrdersByRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })
	seedOrders(t, j)

	orders, err := j.ListOrdersByRun("run-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// Append order, not time order.
	assert.Equal(t, "XYZ", orders[0].Symbol)
	assert.Equal(t, "VIG", orders[1].Symbol)

	none, err := j.ListOrdersByRun("run-99")
	require.NoError(t, err)
	assert.Empty(t, none)
}
