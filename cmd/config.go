package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gobill configuration file values.",
	Long: `Create, edit, display, and delete the gobill configuration file.

The configuration stores application-wide values:
- server.port / server.session_ttl
- export.sheet_name / export.file_name / export.title_font_size
- history.db`,
	Example: `
  # Create default config in $HOME/.gobill.yaml
  gobill config create

  # Show active config and source file
  gobill config show

  # Open active config in editor (creates example if missing)
  gobill config edit

  # Delete active config file
  gobill config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
