package output

import (
	"math"

	"gobill/billing"

	"github.com/shopspring/decimal"
)

// RowStyle selects the font applied to every cell of a row.
type RowStyle int

const (
	StylePlain RowStyle = iota
	StyleTitle
	StyleBold
)

// Row is one worksheet row. Cells hold string, int or float64 values; an
// empty Cells slice is a blank separator row. Float cells are always finite.
type Row struct {
	Cells []any
	Style RowStyle
}

var BillingHeaders = []string{"S.No", "Title", "Duration", "Price", "Total Cost"}

const TotalLabel = "TOTAL"

// BuildBillingRows lays out the billing worksheet top to bottom: title,
// blank separator, header, one row per entry and the grand total row.
func BuildBillingRows(sheet billing.Sheet) []Row {
	entries := sheet.Entries()
	rows := make([]Row, 0, len(entries)+4)

	rows = append(rows, Row{Cells: []any{sheet.ProjectTitle()}, Style: StyleTitle})
	rows = append(rows, Row{})

	header := make([]any, 0, len(BillingHeaders))
	for _, value := range BillingHeaders {
		header = append(header, value)
	}
	rows = append(rows, Row{Cells: header, Style: StyleBold})

	for i, entry := range entries {
		rows = append(rows, Row{
			Cells: []any{
				i + 1,
				entry.Title,
				numberCell(billing.ParseNumberOrZero(entry.Duration)),
				numberCell(billing.ParseNumberOrZero(entry.Price)),
				numberCell(billing.LineTotal(entry)),
			},
			Style: StylePlain,
		})
	}

	rows = append(rows, Row{
		Cells: []any{"", "", "", TotalLabel, numberCell(billing.GrandTotal(entries))},
		Style: StyleBold,
	})

	return rows
}

// numberCell returns the value as float64, or its exact decimal text when a
// product or sum is too large for a float64.
func numberCell(value decimal.Decimal) any {
	f := value.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return value.String()
	}
	return f
}
