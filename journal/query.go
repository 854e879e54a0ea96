package journal

import (
	"strconv"
	"time"
)

// ListOrders returns the most recent audit rows, newest first, up to
// limit (0 means no limit). SQLite only; the CSV journal is an
// append-oriented export without a query layer.
func (j *SQLite) ListOrders(limit int) ([]OrderRecord, error) {
	q := `
		SELECT time, symbol, side, notional, price, order_id, status, error, run_id
		FROM orders
		ORDER BY time DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// ListOrdersByRun returns the audit rows of a single run, in the order
// they were appended.
func (j *SQLite) ListOrdersByRun(runID string) ([]OrderRecord, error) {
	rows, err := j.db.Query(`
		SELECT time, symbol, side, notional, price, order_id, status, error, run_id
		FROM orders
		WHERE run_id = ?
		ORDER BY rowid ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanOrders(rows rowScanner) ([]OrderRecord, error) {
	var out []OrderRecord
	for rows.Next() {
		var (
			rec             OrderRecord
			ts              string
			notional, price string
			status          string
		)
		if err := rows.Scan(&ts, &rec.Symbol, &rec.Side, &notional, &price,
			&rec.OrderID, &status, &rec.ErrText, &rec.RunID); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Time = t
		}
		rec.Notional = parseAmount(notional)
		rec.Price = parseAmount(price)
		rec.Success = status == "success"
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseAmount is the inverse of money: empty text means no value.
func parseAmount(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
