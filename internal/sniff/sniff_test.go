package sniff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/grid"
)

func TestDetectHeaderRow_BelowTitleBlock(t *testing.T) {
	g := grid.Grid{
		{"First National Bank"},
		{"Statement Export", "2025"},
		{"Posting Date", "Description", "Debit", "Credit"},
		{"01/03/2025", "GITHUB", "4.00", ""},
	}
	assert.Equal(t, 2, DetectHeaderRow(g))
}

func TestDetectHeaderRow_FirstRow(t *testing.T) {
	g := grid.Grid{
		{"Date", "Amount", "Payee"},
		{"2025-01-03", "-4.00", "GITHUB"},
	}
	assert.Equal(t, 0, DetectHeaderRow(g))
}

func TestDetectHeaderRow_SingleKeywordNotEnough(t *testing.T) {
	g := grid.Grid{
		{"Date", "x", "y"},
		{"1", "2", "3"},
	}
	assert.Equal(t, 0, DetectHeaderRow(g))
}

func TestDetectHeaderRow_FallbackWhenNothingMatches(t *testing.T) {
	g := grid.Grid{
		{"a", "b"},
		{"c", "d"},
	}
	assert.Equal(t, 0, DetectHeaderRow(g))
}

func TestDetectHeaderRow_IgnoresRowsBeyondTen(t *testing.T) {
	var g grid.Grid
	for i := 0; i < 12; i++ {
		g = append(g, grid.Row{"filler", "noise"})
	}
	g = append(g, grid.Row{"Date", "Description", "Amount"})
	assert.Equal(t, 0, DetectHeaderRow(g))
}

func TestSuggestMapping_DebitCreditLayout(t *testing.T) {
	m := SuggestMapping(grid.Row{"Posting Date", "Description", "Debit", "Credit"})

	require.NotNil(t, m.Date)
	assert.Equal(t, 0, *m.Date)
	require.NotNil(t, m.Description)
	assert.Equal(t, 1, *m.Description)
	require.NotNil(t, m.Debit)
	assert.Equal(t, 2, *m.Debit)
	require.NotNil(t, m.Credit)
	assert.Equal(t, 3, *m.Credit)

	assert.Nil(t, m.Amount)
	assert.Nil(t, m.Merchant)
	assert.Nil(t, m.Category)
}

func TestSuggestMapping_UnifiedLayout(t *testing.T) {
	m := SuggestMapping(grid.Row{"Transaction Date", "Payee", "Memo", "Type", "Amount"})

	require.NotNil(t, m.Date)
	assert.Equal(t, 0, *m.Date)
	require.NotNil(t, m.Merchant)
	assert.Equal(t, 1, *m.Merchant)
	require.NotNil(t, m.Description)
	assert.Equal(t, 2, *m.Description)
	require.NotNil(t, m.Category)
	assert.Equal(t, 3, *m.Category)
	require.NotNil(t, m.Amount)
	assert.Equal(t, 4, *m.Amount)
	assert.Nil(t, m.Debit)
	assert.Nil(t, m.Credit)
}

func TestSuggestMapping_FirstMatchWins(t *testing.T) {
	// Two date-ish columns: the lower index is kept.
	m := SuggestMapping(grid.Row{"Posting Date", "Value Date", "Amount"})
	require.NotNil(t, m.Date)
	assert.Equal(t, 0, *m.Date)
}

func TestSuggestMapping_PunctuationStripped(t *testing.T) {
	m := SuggestMapping(grid.Row{"posting_date", "DESCRIPTION:", " pay-ee "})
	require.NotNil(t, m.Date)
	assert.Equal(t, 0, *m.Date)
	require.NotNil(t, m.Description)
	assert.Equal(t, 1, *m.Description)
	require.NotNil(t, m.Merchant)
	assert.Equal(t, 2, *m.Merchant)
}

func TestSuggestMapping_NoMatches(t *testing.T) {
	m := SuggestMapping(grid.Row{"a", "b", "c"})
	assert.Nil(t, m.Date)
	assert.Nil(t, m.Description)
	assert.Nil(t, m.Merchant)
	assert.Nil(t, m.Category)
	assert.Nil(t, m.Amount)
	assert.Nil(t, m.Debit)
	assert.Nil(t, m.Credit)
}
