// journal/csv.go
package journal

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
)

var header = []string{"time", "symbol", "side", "notional", "price", "order_id", "status", "error", "run_id"}

// CSV keeps the audit log and the ledger sentinel row in a single file,
// audit rows appended, the sentinel row updated in place.
type CSV struct {
	path string
	w    *csv.Writer
	f    *os.File
}

func NewCSV(path string) (*CSV, error) {
	info, err := os.Stat(path)
	fresh := errors.Is(err, os.ErrNotExist) || (err == nil && info.Size() == 0)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &CSV{path: path, w: w, f: f}, nil
}

func (j *CSV) RecordOrder(r OrderRecord) error {
	err := j.w.Write([]string{
		r.Timestamp(),
		r.Symbol,
		r.Side,
		money(r.Notional),
		money(r.Price),
		r.OrderID,
		r.Status(),
		r.ErrText,
		r.RunID,
	})
	if err != nil {
		return err
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Funds() (float64, error) {
	rows, err := j.readAll()
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		if len(row) >= 2 && row[0] == FundsKey {
			return strconv.ParseFloat(row[1], 64)
		}
	}
	return 0, nil
}

// SetFunds rewrites the file with the sentinel row updated in place, or
// appends the row if it has never existed. Audit rows keep their order.
func (j *CSV) SetFunds(funds float64) error {
	rows, err := j.readAll()
	if err != nil {
		return err
	}

	val := strconv.FormatFloat(funds, 'f', 2, 64)
	found := false
	for i, row := range rows {
		if len(row) >= 2 && row[0] == FundsKey {
			rows[i] = []string{FundsKey, val}
			found = true
			break
		}
	}
	if !found {
		rows = append(rows, []string{FundsKey, val})
	}

	if err := j.f.Close(); err != nil {
		return err
	}

	f, err := os.Create(j.path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return j.reopen()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

func (j *CSV) readAll() ([][]string, error) {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return nil, err
	}

	f, err := os.Open(j.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (j *CSV) reopen() error {
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	j.f = f
	j.w = csv.NewWriter(f)
	return nil
}
