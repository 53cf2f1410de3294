package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gobill/billing"
)

const (
	BillingFileName  = "billing.xlsx"
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// BillingWriter serializes a billing sheet snapshot.
type BillingWriter interface {
	Write(out io.Writer, sheet billing.Sheet) error
	Format() string
	ContentType() string
	Extension() string
}

// ExcelOptions carries the configurable parts of the workbook layout.
type ExcelOptions struct {
	SheetName     string
	TitleFontSize float64
}

func BillingWriterForFormat(format string, opts ExcelOptions) (BillingWriter, error) {
	switch normalizeFormat(format) {
	case "", "excel", "xlsx":
		return &BillingExcelWriter{SheetName: opts.SheetName, TitleFontSize: opts.TitleFontSize}, nil
	case "csv":
		return &BillingCSVWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: excel, csv)", format)
	}
}

// DetectFormat infers the output format from a file extension and falls back
// to excel.
func DetectFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	default:
		return "excel"
	}
}

// WriteBillingFile writes the sheet to path. A partially written file is
// removed on failure.
func WriteBillingFile(path string, writer BillingWriter, sheet billing.Sheet) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %s: %w", path, err)
	}

	if err := writer.Write(file, sheet); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", path, err)
	}
	return nil
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
