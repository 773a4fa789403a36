package engine

import "fmt"

// DateFormatError aborts an import on the first unparsable date cell.
// Defaulting a bad date (to "today", say) would import wrong financial
// records silently, so the whole batch fails loudly instead and the
// operator learns the column mapping is wrong. Row is the 1-based position
// in the source grid; Cell is the raw text that failed.
type DateFormatError struct {
	Row  int
	Cell string
	Err  error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("row %d: cannot parse date %q", e.Row, e.Cell)
}

func (e *DateFormatError) Unwrap() error { return e.Err }
