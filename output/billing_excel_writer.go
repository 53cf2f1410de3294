package output

import (
	"fmt"
	"io"

	"gobill/billing"

	"github.com/xuri/excelize/v2"
)

const (
	DefaultSheetName     = "Billing"
	DefaultTitleFontSize = 16
)

// BillingExcelWriter renders a billing sheet as an .xlsx workbook with a
// single worksheet. The workbook is built in memory for every call.
type BillingExcelWriter struct {
	SheetName     string
	TitleFontSize float64
}

func (w *BillingExcelWriter) Write(out io.Writer, sheet billing.Sheet) error {
	file := excelize.NewFile()
	defer file.Close()

	sheetName := w.SheetName
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	if err := file.SetSheetName(file.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename excel sheet %s: %w", sheetName, err)
	}

	styles, err := w.newStyles(file)
	if err != nil {
		return err
	}

	for i, row := range BuildBillingRows(sheet) {
		if len(row.Cells) == 0 {
			continue
		}

		start, _ := excelize.CoordinatesToCellName(1, i+1)
		end, _ := excelize.CoordinatesToCellName(len(row.Cells), i+1)
		cells := row.Cells
		if err := file.SetSheetRow(sheetName, start, &cells); err != nil {
			return fmt.Errorf("set excel row %d: %w", i+1, err)
		}

		styleID, ok := styles[row.Style]
		if !ok {
			continue
		}
		if err := file.SetCellStyle(sheetName, start, end, styleID); err != nil {
			return fmt.Errorf("set excel style %s:%s: %w", start, end, err)
		}
	}

	if err := file.Write(out); err != nil {
		return fmt.Errorf("write excel output: %w", err)
	}
	return nil
}

func (w *BillingExcelWriter) Format() string {
	return "excel"
}

func (w *BillingExcelWriter) ContentType() string {
	return ExcelContentType
}

func (w *BillingExcelWriter) Extension() string {
	return ".xlsx"
}

func (w *BillingExcelWriter) newStyles(file *excelize.File) (map[RowStyle]int, error) {
	size := w.TitleFontSize
	if size <= 0 {
		size = DefaultTitleFontSize
	}

	title, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: size}})
	if err != nil {
		return nil, fmt.Errorf("create excel title style: %w", err)
	}
	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create excel bold style: %w", err)
	}

	return map[RowStyle]int{
		StyleTitle: title,
		StyleBold:  bold,
	}, nil
}
