package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountFormat is the sign/column convention a source uses for money movement.
type AmountFormat string

const (
	// AmountUnified means one amount column, positive = inflow.
	AmountUnified AmountFormat = "unified"
	// AmountUnifiedReverse means one amount column with the sign inverted
	// at the source (credit-card exports that show spend as positive).
	AmountUnifiedReverse AmountFormat = "unified_reverse"
	// AmountSeparate means two columns, debit and credit, both holding
	// non-negative magnitudes.
	AmountSeparate AmountFormat = "separate"
)

// ColumnMapping assigns semantic roles to column indices. A nil field means
// the source has no column for that role. Under the separate amount format
// Amount is unused and Debit/Credit apply; the mapping itself does not
// enforce that, the amount normalizer does.
type ColumnMapping struct {
	Date        *int `yaml:"date"`
	Description *int `yaml:"description,omitempty"`
	Merchant    *int `yaml:"merchant,omitempty"`
	Category    *int `yaml:"category,omitempty"`
	Amount      *int `yaml:"amount,omitempty"`
	Debit       *int `yaml:"debit,omitempty"`
	Credit      *int `yaml:"credit,omitempty"`
}

// ImportConfig is everything needed to turn one statement grid into
// transactions. Built once (suggested by analysis or loaded from a
// profile), optionally edited by the operator, then frozen.
type ImportConfig struct {
	HeaderRow int           `yaml:"header_row"`
	Columns   ColumnMapping `yaml:"columns"`
	Format    AmountFormat  `yaml:"amount_format"`
}

// ParsedTransaction is the canonical normalized record emitted per accepted
// statement row. Amount sign represents the effect on the holding account
// (positive = balance increases). Identity and dedup belong downstream.
type ParsedTransaction struct {
	Date        time.Time
	Description *string
	Merchant    *string
	Category    *string
	Amount      decimal.Decimal
}
