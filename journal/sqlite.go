package journal

import (
	"database/sql"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordOrder(r OrderRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO orders
		(time, symbol, side, notional, price, order_id, status, error, run_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Timestamp(), r.Symbol, r.Side, money(r.Notional), money(r.Price),
		r.OrderID, r.Status(), r.ErrText, r.RunID,
	)
	return err
}

func (j *SQLite) Funds() (float64, error) {
	var funds float64
	err := j.db.QueryRow(`SELECT funds FROM ledger WHERE key = ?`, FundsKey).Scan(&funds)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return funds, nil
}

func (j *SQLite) SetFunds(funds float64) error {
	_, err := j.db.Exec(`
		INSERT INTO ledger (key, funds) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET funds = excluded.funds`,
		FundsKey, funds,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// money renders an optional dollar value as its audit column text,
// empty when absent.
func money(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
