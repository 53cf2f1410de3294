package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"gobill/billing"
)

type Options struct {
	// Format overrides extension based detection for every input.
	Format string
	// SheetName selects the Excel sheet to read; the first sheet is used
	// when it is empty or missing.
	SheetName string
}

type Result struct {
	FilesProcessed int
	RowsRead       int
	RowsMapped     int
	RowsSkipped    int
	// ProjectTitle is the first title found above a header row, if any.
	ProjectTitle string
	Entries      []billing.Entry
}

// Run reads every path in order and collects the mapped entries. Blank rows
// and total rows are skipped.
func Run(paths []string, opts Options) (*Result, error) {
	result := &Result{Entries: make([]billing.Entry, 0, 64)}
	mapper := &EntryMapper{}
	for _, path := range paths {
		sourceFormat, err := inferFormat(path, opts.Format)
		if err != nil {
			return nil, err
		}
		reader, err := ReaderForFormat(sourceFormat, opts.SheetName)
		if err != nil {
			return nil, err
		}

		table, err := reader.Read(path)
		if err != nil {
			return nil, err
		}

		result.FilesProcessed++
		if result.ProjectTitle == "" {
			result.ProjectTitle = table.Title
		}
		result.RowsRead += len(table.Records)
		for _, record := range table.Records {
			entry, ok := mapper.Map(record)
			if !ok {
				result.RowsSkipped++
				continue
			}
			result.RowsMapped++
			result.Entries = append(result.Entries, entry)
		}
	}

	return result, nil
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm", "xls":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}
