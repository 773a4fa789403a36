// Package grid turns raw statement bytes into a uniform in-memory table.
package grid

import "fmt"

// Row is one ordered row of cell text.
type Row []string

// Grid is the full table for one statement file. Column index is the join
// key to a column mapping, so cell order is meaningful.
type Grid []Row

// Cell returns the cell at idx, or "" when idx is nil or beyond the row.
func (r Row) Cell(idx *int) string {
	if idx == nil || *idx < 0 || *idx >= len(r) {
		return ""
	}
	return r[*idx]
}

// SourceFormatError means the raw input could not be decoded into a grid at
// all: corrupt container, empty input, no sheets.
type SourceFormatError struct {
	Format string
	Err    error
}

func (e *SourceFormatError) Error() string {
	return fmt.Sprintf("cannot decode %s input: %v", e.Format, e.Err)
}

func (e *SourceFormatError) Unwrap() error { return e.Err }
