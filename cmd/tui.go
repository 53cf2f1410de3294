package cmd

import (
	"fmt"
	"strings"
	"time"

	"gobill/billing"
	"gobill/config"
	"gobill/history"
	"gobill/internal/tui"
	"gobill/output"

	"github.com/spf13/cobra"
)

var (
	tuiTitle  string
	tuiOutput string
	tuiFormat string
	tuiDBPath string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Fill the billing form in the terminal",
	Long: `Open the billing form in the terminal.

Keys:
  tab / shift+tab  next / previous field
  up / down        move between rows
  ctrl+n           add entry
  ctrl+d           remove focused entry
  ctrl+s           export to --output
  esc / ctrl+c     quit

The entry list lives only for the duration of the session.`,
	Example: `
  # Start with a project title and export to the configured file name
  gobill tui --title "Acme Website"

  # Export CSV instead of a workbook
  gobill tui -o ./billing.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		outputPath := strings.TrimSpace(tuiOutput)
		if outputPath == "" {
			outputPath = cfg.Export.FileName
		}
		format := tuiFormat
		if strings.TrimSpace(format) == "" {
			format = output.DetectFormat(outputPath)
		}
		writer, err := output.BillingWriterForFormat(format, excelOptions(cfg))
		if err != nil {
			return err
		}

		dbPath := resolveHistoryDB(tuiDBPath, cmd.Flags().Changed("db"), cfg.History.DB)
		recorder, closeHistory, err := openHistory(dbPath)
		if err != nil {
			return err
		}
		defer closeHistory()

		sheet := billing.NewSheet().SetProjectTitle(tuiTitle)
		final, err := tui.Run(sheet, fileExporter(outputPath, writer, recorder))
		if err != nil {
			return err
		}

		fmt.Printf("Entries: %d, Total: %s\n", final.Len(), billing.GrandTotal(final.Entries()).StringFixed(2))
		return nil
	},
}

// fileExporter writes every requested snapshot to the same path and records
// it in the history.
func fileExporter(path string, writer output.BillingWriter, recorder history.Recorder) tui.ExportFunc {
	return func(sheet billing.Sheet) (string, error) {
		if err := output.WriteBillingFile(path, writer, sheet); err != nil {
			return "", err
		}
		record := history.NewRecord(sheet, writer.Format(), history.SurfaceTUI, time.Now())
		// stderr is hidden behind the alt screen, so report it in the status line.
		if err := history.Save(recorder, record, nil); err != nil {
			return fmt.Sprintf("%s (history not recorded: %v)", path, err), nil
		}
		return path, nil
	}
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVarP(&tuiTitle, "title", "t", "", "Initial project title")
	tuiCmd.Flags().StringVarP(&tuiOutput, "output", "o", "", "Output file path (default from export.file_name)")
	tuiCmd.Flags().StringVarP(&tuiFormat, "format", "f", "", "Output format: excel|csv (optional, inferred from output extension)")
	tuiCmd.Flags().StringVar(&tuiDBPath, "db", "", "Path to export history SQLite database (default from history.db, empty disables)")
}
