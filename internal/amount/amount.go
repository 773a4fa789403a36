// Package amount computes the signed effect of a statement row on the
// holding account balance.
package amount

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/grid"
	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// Normalize reads the mapped amount cells of row and returns one signed
// decimal, positive meaning the balance increases. Missing cells and
// unparsable text count as zero; the assembler drops zero-amount rows.
func Normalize(row grid.Row, cols model.ColumnMapping, format model.AmountFormat) decimal.Decimal {
	switch format {
	case model.AmountSeparate:
		debit := parseCell(row.Cell(cols.Debit))
		credit := parseCell(row.Cell(cols.Credit))
		return credit.Sub(debit)
	case model.AmountUnifiedReverse:
		return parseCell(row.Cell(cols.Amount)).Neg()
	default:
		return parseCell(row.Cell(cols.Amount))
	}
}

// Sanitize strips currency symbols and grouping from raw amount text,
// keeping digits, the decimal point, and a single leading minus.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9' || r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseCell(s string) decimal.Decimal {
	d, err := decimal.NewFromString(Sanitize(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
