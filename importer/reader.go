package importer

import "fmt"

// Reader loads one source file into a Table.
type Reader interface {
	Read(path string) (Table, error)
}

// ReaderForFormat picks the reader for an input format. sheetName only
// applies to Excel sources.
func ReaderForFormat(format, sheetName string) (Reader, error) {
	switch normalizeHeader(format) {
	case "csv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm", "xls":
		return &ExcelReader{SheetName: sheetName}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}
