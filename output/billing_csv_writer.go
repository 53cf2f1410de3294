package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gobill/billing"
)

// BillingCSVWriter writes the billing rows as plain CSV. Styling is dropped.
type BillingCSVWriter struct{}

func (w *BillingCSVWriter) Write(out io.Writer, sheet billing.Sheet) error {
	writer := csv.NewWriter(out)

	for i, row := range BuildBillingRows(sheet) {
		record := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			record = append(record, formatCell(cell))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

func (w *BillingCSVWriter) Format() string {
	return "csv"
}

func (w *BillingCSVWriter) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (w *BillingCSVWriter) Extension() string {
	return ".csv"
}

func formatCell(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
