// journal/journal.go
package journal

import "time"

// FundsKey is the sentinel identity the accumulated-profit ledger is
// stored under. It is a fixed literal so the same row can be found and
// upserted across runs.
const FundsKey = "VIG_FUNDS"

// OrderRecord is one audit row per order attempt, successful or not.
// Notional is set on buys, Price on sells (the price the decision was
// made at) and on buys when the screener supplied a reference price.
type OrderRecord struct {
	Time     time.Time
	Symbol   string
	Side     string
	Notional *float64
	Price    *float64
	OrderID  string
	Success  bool
	ErrText  string
	RunID    string
}

type Journal interface {
	// RecordOrder appends one audit row. Rows are immutable once written.
	RecordOrder(OrderRecord) error
	// Funds returns the accumulated ledger value, 0 when the sentinel
	// row has never been written.
	Funds() (float64, error)
	// SetFunds upserts the ledger sentinel row with a new value.
	SetFunds(float64) error
	Close() error
}

// Timestamp renders r.Time the way audit rows store it: ISO-8601 at
// second precision.
func (r OrderRecord) Timestamp() string {
	return r.Time.Truncate(time.Second).Format(time.RFC3339)
}

// Status renders the success flag as the audit column value.
func (r OrderRecord) Status() string {
	if r.Success {
		return "success"
	}
	return "fail"
}
