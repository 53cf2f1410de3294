package cmd

import (
	"fmt"
	"github.com/spf13/viper"

	"github.com/spf13/cobra"
	"gobill/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Without a
config file the built-in defaults are shown.`,
	Example: `
  # Show active configuration
  gobill config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded, showing defaults.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("%s: %d\n", config.KeyServerPort, cfg.Server.Port)
		fmt.Printf("%s: %s\n", config.KeyServerSessionTTL, cfg.Server.SessionTTL)
		fmt.Printf("%s: %s\n", config.KeyExportSheetName, cfg.Export.SheetName)
		fmt.Printf("%s: %s\n", config.KeyExportFileName, cfg.Export.FileName)
		fmt.Printf("%s: %g\n", config.KeyExportTitleFontSize, cfg.Export.TitleFontSize)
		historyDB := cfg.History.DB
		if historyDB == "" {
			historyDB = "(disabled)"
		}
		fmt.Printf("%s: %s\n", config.KeyHistoryDB, historyDB)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
