package engine

import (
	"fmt"

	"github.com/bankfeed-dev/bankfeed/internal/grid"
)

// Format is the caller's hint for how the raw bytes are encoded.
type Format string

const (
	// FormatDelimited is CSV-style delimited text.
	FormatDelimited Format = "delimited"
	// FormatSpreadsheet is an xlsx workbook.
	FormatSpreadsheet Format = "spreadsheet"
)

// Adapter converts one source encoding into a Grid.
type Adapter interface {
	ToGrid(raw []byte) (grid.Grid, error)
	Format() Format
}

// Registry holds adapters keyed by format.
type Registry struct {
	adapters map[Format]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[Format]Adapter)}
}

// Register adds an adapter. Panics on duplicate format.
func (r *Registry) Register(a Adapter) {
	if _, ok := r.adapters[a.Format()]; ok {
		panic("duplicate adapter format: " + string(a.Format()))
	}
	r.adapters[a.Format()] = a
}

// Get returns the adapter for format, or nil.
func (r *Registry) Get(format Format) Adapter {
	return r.adapters[format]
}

// DefaultRegistry returns a registry with all built-in adapters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(delimitedAdapter{})
	r.Register(spreadsheetAdapter{})
	return r
}

type delimitedAdapter struct{}

func (delimitedAdapter) ToGrid(raw []byte) (grid.Grid, error) { return grid.FromDelimited(raw) }
func (delimitedAdapter) Format() Format                       { return FormatDelimited }

type spreadsheetAdapter struct{}

func (spreadsheetAdapter) ToGrid(raw []byte) (grid.Grid, error) { return grid.FromSpreadsheet(raw) }
func (spreadsheetAdapter) Format() Format                       { return FormatSpreadsheet }

func toGrid(raw []byte, format Format) (grid.Grid, error) {
	a := DefaultRegistry().Get(format)
	if a == nil {
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	return a.ToGrid(raw)
}
