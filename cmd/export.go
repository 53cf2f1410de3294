package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gobill/billing"
	"gobill/config"
	"gobill/history"
	"gobill/importer"
	"gobill/output"

	"github.com/spf13/cobra"
)

var (
	exportInputs      []string
	exportInputFormat string
	exportTitle       string
	exportFormat      string
	exportOutput      string
	exportDBPath      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export line items from CSV/Excel sources to a billing workbook",
	Long: `Read line items from one or more CSV or Excel sources and write them as a billing export.

The header row is the first row with a title column, so a previous billing export
can be read back; its project title and TOTAL row are recognized. Source columns are
matched by header name (case and spacing insensitive):
- title:    title, description, task, item
- duration: duration, minutes, duration_minutes
- price:    price, rate, unit_price

Values are kept as written; non-numeric durations and prices count as 0 in the export.
Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export a CSV source to billing.xlsx
  gobill export -i entries.csv --title "Acme Website"

  # Re-export a previous billing workbook as CSV, keeping its title
  gobill export -i billing.xlsx -o ./billing.csv

  # Merge two sources and write CSV
  gobill export -i january.xlsx -i february.csv --title "Acme" -o ./billing.csv

  # Force Excel format independent of extension
  gobill export -i entries.csv --format excel -o ./billing.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		outputPath := strings.TrimSpace(exportOutput)
		if outputPath == "" {
			outputPath = cfg.Export.FileName
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = output.DetectFormat(outputPath)
		}
		writer, err := output.BillingWriterForFormat(format, excelOptions(cfg))
		if err != nil {
			return err
		}

		result, err := importer.Run(exportInputs, importer.Options{
			Format:    exportInputFormat,
			SheetName: cfg.Export.SheetName,
		})
		if err != nil {
			return err
		}

		title := exportTitle
		if !cmd.Flags().Changed("title") {
			title = result.ProjectTitle
		}
		sheet := billing.FromEntries(title, result.Entries)
		if err := output.WriteBillingFile(outputPath, writer, sheet); err != nil {
			return err
		}

		dbPath := resolveHistoryDB(exportDBPath, cmd.Flags().Changed("db"), cfg.History.DB)
		recorder, closeHistory, err := openHistory(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: export history unavailable: %v\n", err)
		} else {
			defer closeHistory()
			_ = history.Save(recorder, history.NewRecord(sheet, writer.Format(), history.SurfaceCLI, time.Now()), os.Stderr)
		}

		fmt.Printf(
			"Export completed. Files: %d, Rows read: %d, Entries: %d, Skipped: %d, Total: %s, Format: %s, File: %s\n",
			result.FilesProcessed,
			result.RowsRead,
			result.RowsMapped,
			result.RowsSkipped,
			billing.GrandTotal(sheet.Entries()).StringFixed(2),
			writer.Format(),
			outputPath,
		)
		return nil
	},
}

func excelOptions(cfg *config.Config) output.ExcelOptions {
	return output.ExcelOptions{
		SheetName:     cfg.Export.SheetName,
		TitleFontSize: cfg.Export.TitleFontSize,
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringArrayVarP(&exportInputs, "input", "i", nil, "Input file path (repeatable)")
	exportCmd.Flags().StringVar(&exportInputFormat, "input-format", "", "Input format: csv|excel (optional, inferred from input extension)")
	exportCmd.Flags().StringVarP(&exportTitle, "title", "t", "", "Project title written in the first row (default: title found above the source header)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: excel|csv (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default from export.file_name)")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Path to export history SQLite database (default from history.db, empty disables)")

	_ = exportCmd.MarkFlagRequired("input")
}
