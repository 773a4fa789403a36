package grid

import (
	"errors"
	"strings"
)

// delimiterCandidates are tried in order when sniffing; comma wins ties.
var delimiterCandidates = []byte{',', ';', '\t', '|'}

// FromDelimited decodes delimited text (CSV and friends) into a Grid. The
// delimiter is sniffed from the first non-empty line. Quoted fields may
// contain the delimiter, line breaks, and doubled quotes.
func FromDelimited(data []byte) (Grid, error) {
	text := strings.TrimPrefix(string(data), "\ufeff")

	var g Grid
	delim := DetectDelimiter(text)
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		g = append(g, parseLine(line, delim))
	}
	if len(g) == 0 {
		return nil, &SourceFormatError{Format: "delimited", Err: errors.New("no rows")}
	}
	return g, nil
}

// DetectDelimiter picks the candidate occurring most often in the first
// non-empty line, defaulting to comma.
func DetectDelimiter(text string) byte {
	var line string
	for _, l := range splitLines(text) {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}

	best := byte(',')
	bestCount := 0
	for _, c := range delimiterCandidates {
		n := strings.Count(line, string(c))
		if n > bestCount {
			best = c
			bestCount = n
		}
	}
	return best
}

// splitLines splits text into physical rows, treating line breaks inside
// quoted fields as cell content rather than row boundaries.
func splitLines(text string) []string {
	var lines []string
	var buf strings.Builder
	inQuotes := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			buf.WriteByte(c)
		case c == '\n' && !inQuotes:
			lines = append(lines, strings.TrimSuffix(buf.String(), "\r"))
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	if buf.Len() > 0 {
		lines = append(lines, strings.TrimSuffix(buf.String(), "\r"))
	}
	return lines
}

// parseLine splits one row into cells with a quote-aware scan: a quote
// toggles the in-quotes flag, except that a doubled quote inside quotes is
// one literal quote character. The delimiter only ends a field outside
// quotes. The trailing field is always flushed.
func parseLine(line string, delim byte) Row {
	var fields Row
	var buf strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				buf.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == delim && !inQuotes:
			fields = append(fields, buf.String())
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	fields = append(fields, buf.String())
	return fields
}
