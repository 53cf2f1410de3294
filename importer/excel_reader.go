package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads the named sheet, or the first sheet when SheetName is
// empty or missing from the workbook.
type ExcelReader struct {
	SheetName string
}

func (r *ExcelReader) Read(path string) (Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName := r.resolveSheet(file)
	if sheetName == "" {
		return Table{}, fmt.Errorf("excel file has no sheets: %s", path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return Table{}, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("sheet %s is empty", sheetName)
	}

	table, err := tableFromRows(rows)
	if err != nil {
		return Table{}, fmt.Errorf("sheet %s in %s: %w", sheetName, path, err)
	}
	return table, nil
}

func (r *ExcelReader) resolveSheet(file *excelize.File) string {
	if r.SheetName != "" {
		if index, err := file.GetSheetIndex(r.SheetName); err == nil && index >= 0 {
			return r.SheetName
		}
	}
	return file.GetSheetName(0)
}
