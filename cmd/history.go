package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"gobill/config"
	"gobill/storage"

	"github.com/spf13/cobra"
)

var (
	historyDBPath string
	historyLimit  int
	historyClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear recorded exports",
	Long: `List exports recorded by serve, tui, and export, newest first.

The history only summarizes produced files (title, entry count, grand total,
format, surface). It never restores an entry list.`,
	Example: `
  # Show the last 20 exports
  gobill history

  # Show all exports from a specific database
  gobill history --db ./gobill.db --limit 0

  # Delete all recorded exports
  gobill history --clear
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		dbPath := resolveHistoryDB(historyDBPath, cmd.Flags().Changed("db"), cfg.History.DB)
		if strings.TrimSpace(dbPath) == "" {
			return fmt.Errorf("export history is disabled (history.db is empty)")
		}

		store, err := storage.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if historyClear {
			deleted, err := store.DeleteAllExports()
			if err != nil {
				return err
			}
			fmt.Printf("History cleared. Deleted records: %d\n", deleted)
			return nil
		}

		if historyLimit < 0 {
			return fmt.Errorf("invalid --limit value: %d", historyLimit)
		}
		records, err := store.ListExports(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No exports recorded.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tEXPORTED\tSURFACE\tFORMAT\tENTRIES\tTOTAL\tTITLE")
		for _, record := range records {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
				record.ID,
				record.ExportedAt.Local().Format("2006-01-02 15:04:05"),
				record.Surface,
				record.Format,
				record.EntryCount,
				record.GrandTotal.StringFixed(2),
				record.ProjectTitle,
			)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDBPath, "db", "", "Path to export history SQLite database (default from history.db)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of records to list (0 lists all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all recorded exports")
}
