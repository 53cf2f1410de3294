package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/xuri/excelize/v2"

	"gobill/billing"
	"gobill/config"
	"gobill/history"
	"gobill/output"
	"gobill/storage"
)

func TestExportCommandWritesWorkbookAndHistory(t *testing.T) {
	t.Cleanup(func() {
		exportInputs = nil
		exportInputFormat = ""
		exportTitle = ""
		exportFormat = ""
		exportOutput = ""
		exportCmd.Flags().Lookup("title").Changed = false
		viper.Reset()
		config.SetDefaults()
	})

	dir := t.TempDir()
	input := filepath.Join(dir, "entries.csv")
	content := "Title,Duration,Price\nDesign,120,2\nReview,30,1.5\n,,\n"
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	dbPath := filepath.Join(dir, "history.db")
	outPath := filepath.Join(dir, "billing.xlsx")

	viper.Reset()
	config.SetDefaults()
	viper.Set(config.KeyHistoryDB, dbPath)

	exportInputs = []string{input}
	exportOutput = outPath
	if err := exportCmd.Flags().Set("title", "Acme"); err != nil {
		t.Fatalf("set title flag: %v", err)
	}

	if err := exportCmd.RunE(exportCmd, nil); err != nil {
		t.Fatalf("run export: %v", err)
	}

	file, err := excelize.OpenFile(outPath)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer file.Close()

	title, err := file.GetCellValue(output.DefaultSheetName, "A1")
	if err != nil {
		t.Fatalf("read title: %v", err)
	}
	if title != "Acme" {
		t.Fatalf("expected title Acme, got %q", title)
	}
	label, _ := file.GetCellValue(output.DefaultSheetName, "D6")
	total, _ := file.GetCellValue(output.DefaultSheetName, "E6")
	if label != "TOTAL" || total != "285" {
		t.Fatalf("expected TOTAL 285 in row 6, got %q %q", label, total)
	}

	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()

	records, err := store.ListExports(0)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one history record, got %d", len(records))
	}
	got := records[0]
	if got.Surface != history.SurfaceCLI || got.Format != "excel" || got.EntryCount != 2 || got.GrandTotal.StringFixed(2) != "285.00" {
		t.Fatalf("unexpected history record: %+v", got)
	}
}

func TestExportCommandRejectsUnknownFormat(t *testing.T) {
	t.Cleanup(func() {
		exportInputs = nil
		exportFormat = ""
		exportOutput = ""
		viper.Reset()
		config.SetDefaults()
	})

	viper.Reset()
	config.SetDefaults()
	exportInputs = []string{"unused.csv"}
	exportFormat = "pdf"
	exportOutput = filepath.Join(t.TempDir(), "billing.pdf")

	err := exportCmd.RunE(exportCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestFileExporterRecordsTUIExport(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.OpenSQLite(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()

	outPath := filepath.Join(dir, "billing.csv")
	export := fileExporter(outPath, &output.BillingCSVWriter{}, store)

	sheet := billing.NewSheet().
		SetProjectTitle("Acme").
		UpdateField(0, billing.FieldDuration, "10").
		UpdateField(0, billing.FieldPrice, "3")

	target, err := export(sheet)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if target != outPath {
		t.Fatalf("expected target %q, got %q", outPath, target)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("expected output file: %v", err)
	}

	records, err := store.ListExports(0)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(records) != 1 || records[0].Surface != history.SurfaceTUI || records[0].Format != "csv" {
		t.Fatalf("unexpected history records: %+v", records)
	}
}

func TestOpenHistoryEmptyPathDisables(t *testing.T) {
	recorder, closeHistory, err := openHistory("  ")
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer closeHistory()

	if _, ok := recorder.(history.Discard); !ok {
		t.Fatalf("expected discard recorder, got %T", recorder)
	}
}
