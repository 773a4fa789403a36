package grid

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// serialEpoch is the day-zero of spreadsheet date serials.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Built-in number format IDs that render as dates or times.
var dateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true,
	20: true, 21: true, 22: true, 45: true, 46: true, 47: true,
}

// FromSpreadsheet decodes the first sheet of an xlsx workbook into a Grid.
// Cells carrying a date format are rendered as ISO dates via their serial
// value; every other cell keeps its raw text.
func FromSpreadsheet(data []byte) (Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &SourceFormatError{Format: "spreadsheet", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &SourceFormatError{Format: "spreadsheet", Err: errors.New("no sheets")}
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &SourceFormatError{Format: "spreadsheet", Err: fmt.Errorf("reading sheet %s: %w", sheet, err)}
	}

	var g Grid
	for r, cells := range rows {
		row := make(Row, len(cells))
		for c, raw := range cells {
			row[c] = renderCell(f, sheet, r, c, raw)
		}
		g = append(g, row)
	}
	if len(g) == 0 {
		return nil, &SourceFormatError{Format: "spreadsheet", Err: errors.New("empty sheet")}
	}
	return g, nil
}

// renderCell converts one raw cell to text. Numeric cells styled as dates
// become YYYY-MM-DD when the serial lands in a plausible calendar year;
// everything else passes through as plain text.
func renderCell(f *excelize.File, sheet string, r, c int, raw string) string {
	raw = strings.TrimSpace(raw)
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}

	axis, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return raw
	}
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil || !isDateStyle(f, styleID) {
		return raw
	}

	if t, ok := DateFromSerial(serial); ok {
		return t.Format("2006-01-02")
	}
	return raw
}

// isDateStyle reports whether a style ID carries a date number format.
func isDateStyle(f *excelize.File, styleID int) bool {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		code := strings.ToLower(*style.CustomNumFmt)
		return strings.ContainsAny(code, "ymd")
	}
	return dateNumFmts[style.NumFmt]
}

// DateFromSerial converts a spreadsheet date serial (days since
// 1899-12-30) to a calendar date. Serials whose year falls outside
// 1900-2100 are rejected as implausible, so ordinary numbers that merely
// look like serials are never silently turned into dates.
func DateFromSerial(serial float64) (time.Time, bool) {
	days := int(serial)
	if days <= 0 {
		return time.Time{}, false
	}
	t := serialEpoch.AddDate(0, 0, days)
	if t.Year() < 1900 || t.Year() > 2100 {
		return time.Time{}, false
	}
	return t, true
}
