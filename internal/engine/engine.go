// Package engine composes the statement normalization pipeline: decode raw
// bytes to a grid, detect the header, suggest a column mapping, and
// assemble canonical transactions under a frozen import config.
//
// The engine is purely computational: no I/O, no logging, no shared state
// between calls. Concurrent imports need no coordination.
package engine

import (
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/amount"
	"github.com/bankfeed-dev/bankfeed/internal/dateparse"
	"github.com/bankfeed-dev/bankfeed/internal/grid"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/sniff"
)

// previewLimit caps the rows returned for operator display.
const previewLimit = 10

// Analysis is the result of the analysis phase: where the header is, what
// it says, a short preview, and a suggested config the operator may edit
// before importing.
type Analysis struct {
	HeaderRow   int
	HeaderCells grid.Row
	PreviewRows []grid.Row
	Suggested   model.ImportConfig
}

// Analyze decodes raw statement bytes and proposes an import config. The
// suggestion is best-effort and must be reviewed before use.
func Analyze(raw []byte, format Format) (*Analysis, error) {
	g, err := toGrid(raw, format)
	if err != nil {
		return nil, err
	}

	headerRow := sniff.DetectHeaderRow(g)
	mapping := sniff.SuggestMapping(g[headerRow])

	preview := g
	if len(preview) > previewLimit {
		preview = preview[:previewLimit]
	}

	return &Analysis{
		HeaderRow:   headerRow,
		HeaderCells: g[headerRow],
		PreviewRows: preview,
		Suggested: model.ImportConfig{
			HeaderRow: headerRow,
			Columns:   mapping,
			Format:    suggestFormat(mapping),
		},
	}, nil
}

// Import decodes raw statement bytes and assembles transactions under cfg.
// The returned sequence is all-or-nothing: any date failure aborts the
// whole call.
func Import(raw []byte, format Format, cfg model.ImportConfig) ([]model.ParsedTransaction, error) {
	g, err := toGrid(raw, format)
	if err != nil {
		return nil, err
	}
	return assemble(g, cfg)
}

// assemble walks the rows after the header and emits one transaction per
// surviving row, in row order. Zero-amount rows and rows with no date text
// are skipped silently; an unparsable date is fatal.
func assemble(g grid.Grid, cfg model.ImportConfig) ([]model.ParsedTransaction, error) {
	var txns []model.ParsedTransaction
	for i := cfg.HeaderRow + 1; i < len(g); i++ {
		row := g[i]

		amt := amount.Normalize(row, cfg.Columns, cfg.Format)
		if amt.IsZero() {
			// Running-balance and summary lines compute to zero. A
			// genuine zero-value transaction is indistinguishable
			// from those here and is dropped too.
			continue
		}

		dateCell := strings.TrimSpace(row.Cell(cfg.Columns.Date))
		if dateCell == "" {
			continue
		}
		date, err := dateparse.Resolve(dateCell)
		if err != nil {
			return nil, &DateFormatError{Row: i + 1, Cell: dateCell, Err: err}
		}

		txns = append(txns, model.ParsedTransaction{
			Date:        date,
			Description: optionalText(row, cfg.Columns.Description),
			Merchant:    optionalText(row, cfg.Columns.Merchant),
			Category:    optionalText(row, cfg.Columns.Category),
			Amount:      amt,
		})
	}
	return txns, nil
}

// optionalText reads a mapped text cell, returning nil for unmapped
// columns, indices beyond the row, and blank cells.
func optionalText(row grid.Row, idx *int) *string {
	if idx == nil || *idx < 0 || *idx >= len(row) {
		return nil
	}
	s := strings.TrimSpace(row[*idx])
	if s == "" {
		return nil
	}
	return &s
}

// suggestFormat guesses the amount convention from the mapped columns:
// paired debit/credit columns mean the separate format, anything else
// defaults to unified. unified_reverse cannot be detected from headers and
// stays an operator call.
func suggestFormat(m model.ColumnMapping) model.AmountFormat {
	if m.Debit != nil && m.Credit != nil {
		return model.AmountSeparate
	}
	return model.AmountUnified
}
