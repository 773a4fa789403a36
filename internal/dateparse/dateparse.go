// Package dateparse resolves locale-ambiguous statement dates.
//
// Banks export dates as ISO, day-first, or month-first with no marker for
// which convention is in play. The resolver tries ISO, then falls back to a
// documented tie-break for two-part ambiguity: a component above 12 must be
// the day; when both fit either slot, day-first wins if it forms a valid
// date. That default is a policy choice, not a correctness guarantee, so a
// cell matching no rule is a typed failure rather than a silent guess.
package dateparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnrecognized means the cell matched none of the resolver's patterns.
var ErrUnrecognized = errors.New("unrecognized date format")

var (
	isoPattern       = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	ambiguousPattern = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{2}|\d{4})$`)
)

// Resolve converts one raw date-like cell to a calendar date, discarding
// any trailing time-of-day component first.
func Resolve(cell string) (time.Time, error) {
	s := stripTimePart(strings.TrimSpace(cell))

	if m := isoPattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if t, ok := makeDate(year, month, day); ok {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, cell)
	}

	if m := ambiguousPattern.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}

		switch {
		case a > 12:
			// a cannot be a month.
			if t, ok := makeDate(year, b, a); ok {
				return t, nil
			}
		case b > 12:
			// b cannot be a month.
			if t, ok := makeDate(year, a, b); ok {
				return t, nil
			}
		default:
			// Genuinely ambiguous: prefer day-first, fall back to
			// month-first.
			if t, ok := makeDate(year, b, a); ok {
				return t, nil
			}
			if t, ok := makeDate(year, a, b); ok {
				return t, nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, cell)
}

// stripTimePart drops everything after the first space or "T" that splits
// the text into two non-empty halves, keeping only the date part.
func stripTimePart(s string) string {
	for _, sep := range []string{" ", "T"} {
		if i := strings.Index(s, sep); i > 0 && i < len(s)-1 {
			return s[:i]
		}
	}
	return s
}

// makeDate validates ranges and calendar reality (no Feb 31) and builds a
// midnight-UTC date.
func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1900 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
