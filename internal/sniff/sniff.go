// Package sniff locates the header row of a statement grid and guesses
// which column carries which field. Both results are suggestions for the
// operator to review, never guarantees.
package sniff

import (
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/grid"
	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// headerScanLimit bounds the search: statements sometimes carry a title
// block above the table, but never ten rows of it.
const headerScanLimit = 10

// headerScoreThreshold is the number of keyword-bearing cells that makes a
// row a header.
const headerScoreThreshold = 2

// Role keyword sets, matched against cleaned header text.
var (
	dateKeywords        = []string{"date", "posted"}
	descriptionKeywords = []string{"description", "memo", "details", "narrative"}
	merchantKeywords    = []string{"merchant", "payee", "vendor"}
	categoryKeywords    = []string{"category", "type"}
	amountKeywords      = []string{"amount"}
	debitKeywords       = []string{"debit", "withdrawal", "moneyout"}
	creditKeywords      = []string{"credit", "deposit", "moneyin"}
)

// headerKeywords is the full vocabulary used for header-row scoring.
var headerKeywords = joinKeywords(
	dateKeywords, descriptionKeywords, merchantKeywords,
	categoryKeywords, amountKeywords, debitKeywords, creditKeywords,
)

// DetectHeaderRow scores the first ten rows against the header vocabulary
// and returns the first row where at least two cells match. When nothing
// qualifies it falls back to row 0; callers may override.
func DetectHeaderRow(g grid.Grid) int {
	limit := len(g)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	for i := 0; i < limit; i++ {
		score := 0
		for _, cell := range g[i] {
			if matchesAny(clean(cell), headerKeywords) {
				score++
			}
		}
		if score >= headerScoreThreshold {
			return i
		}
	}
	return 0
}

// SuggestMapping assigns each role the lowest-index column whose cleaned
// header contains one of the role's keywords. Roles are tried in a fixed
// order and a role, once assigned, is never reassigned, so the rule order
// below is load-bearing for ambiguous headers.
func SuggestMapping(header grid.Row) model.ColumnMapping {
	var m model.ColumnMapping

	rules := []struct {
		dst      **int
		keywords []string
	}{
		{&m.Date, dateKeywords},
		{&m.Description, descriptionKeywords},
		{&m.Merchant, merchantKeywords},
		{&m.Category, categoryKeywords},
		{&m.Amount, amountKeywords},
		{&m.Debit, debitKeywords},
		{&m.Credit, creditKeywords},
	}

	cleaned := make([]string, len(header))
	for i, cell := range header {
		cleaned[i] = clean(cell)
	}

	for _, rule := range rules {
		for idx, text := range cleaned {
			if matchesAny(text, rule.keywords) {
				col := idx
				*rule.dst = &col
				break
			}
		}
	}
	return m
}

// clean lowercases and strips everything but letters and digits, so
// "Posting Date" and "posting_date" compare equal.
func clean(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func matchesAny(cleaned string, keywords []string) bool {
	if cleaned == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(cleaned, kw) {
			return true
		}
	}
	return false
}

func joinKeywords(sets ...[]string) []string {
	var all []string
	for _, set := range sets {
		all = append(all, set...)
	}
	return all
}
