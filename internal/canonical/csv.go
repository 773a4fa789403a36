// Package canonical reads and writes the engine's output shape as CSV, the
// handoff format for downstream dedup and storage.
package canonical

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Header is the CSV header for normalized transaction files.
const Header = "date,amount,description,merchant,category"

const (
	numFields  = 5
	dateFormat = "2006-01-02"

	colDate     = 0
	colAmount   = 1
	colDesc     = 2
	colMerchant = 3
	colCategory = 4
)

// Write writes transactions as CSV, including the header row.
func Write(w io.Writer, txns []model.ParsedTransaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(marshalRow(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// Read reads a canonical CSV back into transactions.
func Read(r io.Reader) ([]model.ParsedTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading canonical CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var txns []model.ParsedTransaction
	for i, rec := range records[1:] {
		txn, err := unmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func marshalRow(txn model.ParsedTransaction) []string {
	rec := make([]string, numFields)
	rec[colDate] = txn.Date.Format(dateFormat)
	rec[colAmount] = txn.Amount.String()
	rec[colDesc] = optional(txn.Description)
	rec[colMerchant] = optional(txn.Merchant)
	rec[colCategory] = optional(txn.Category)
	return rec
}

func unmarshalRow(rec []string) (model.ParsedTransaction, error) {
	date, err := time.Parse(dateFormat, rec[colDate])
	if err != nil {
		return model.ParsedTransaction{}, fmt.Errorf("parsing date %q: %w", rec[colDate], err)
	}
	amt, err := decimal.NewFromString(rec[colAmount])
	if err != nil {
		return model.ParsedTransaction{}, fmt.Errorf("parsing amount %q: %w", rec[colAmount], err)
	}

	return model.ParsedTransaction{
		Date:        date,
		Amount:      amt,
		Description: pointerTo(rec[colDesc]),
		Merchant:    pointerTo(rec[colMerchant]),
		Category:    pointerTo(rec[colCategory]),
	}, nil
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func pointerTo(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
