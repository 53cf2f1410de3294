package importer

import (
	"encoding/csv"
	"fmt"
	"os"
)

type CSVReader struct{}

func (r *CSVReader) Read(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("csv file %s is empty", path)
	}

	table, err := tableFromRows(rows)
	if err != nil {
		return Table{}, fmt.Errorf("csv file %s: %w", path, err)
	}
	return table, nil
}
