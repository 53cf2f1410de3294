package importer

import (
	"fmt"
	"strings"
)

// Record is one data row keyed by normalized header.
type Record struct {
	RowNumber int
	Values    map[string]string
}

func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Table is the content of one source: the detected header row, an optional
// project title found above it and the data rows below it.
type Table struct {
	Title   string
	Headers []string
	Records []Record
}

var titleHeaders = []string{"title", "description", "task", "item"}

// tableFromRows locates the header row and turns every later row into a
// Record. A billing export has its header on row 3 below the project title,
// a plain list has it on row 1.
func tableFromRows(rows [][]string) (Table, error) {
	headerIndex := -1
	for i, row := range rows {
		if isHeaderRow(row) {
			headerIndex = i
			break
		}
	}
	if headerIndex < 0 {
		return Table{}, fmt.Errorf("no header row with a title column (%s)", strings.Join(titleHeaders, ", "))
	}

	table := Table{Title: leadingTitle(rows[:headerIndex])}
	table.Headers = make([]string, len(rows[headerIndex]))
	for i, header := range rows[headerIndex] {
		table.Headers[i] = normalizeHeader(header)
	}

	table.Records = make([]Record, 0, len(rows)-headerIndex-1)
	for i, row := range rows[headerIndex+1:] {
		values := make(map[string]string, len(table.Headers))
		for col, header := range table.Headers {
			if header == "" {
				continue
			}
			if col < len(row) {
				values[header] = row[col]
			} else {
				values[header] = ""
			}
		}
		table.Records = append(table.Records, Record{RowNumber: headerIndex + i + 2, Values: values})
	}
	return table, nil
}

func isHeaderRow(row []string) bool {
	for _, cell := range row {
		normalized := normalizeHeader(cell)
		for _, header := range titleHeaders {
			if normalized == header {
				return true
			}
		}
	}
	return false
}

// leadingTitle returns the first non-blank cell above the header.
func leadingTitle(rows [][]string) string {
	for _, row := range rows {
		for _, cell := range row {
			if trimmed := strings.TrimSpace(cell); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	trimmed = strings.ReplaceAll(trimmed, ".", "")
	return trimmed
}
