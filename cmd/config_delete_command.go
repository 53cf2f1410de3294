package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by gobill.

Built-in defaults apply afterwards. A rejected edit copy (<config>.rejected)
is removed as well. If no configuration file is active, the command returns an error.`,
	Example: `
  # Delete active config
  gobill config delete

  # Delete config at a custom path
  gobill --configFile ./custom-gobill.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := viper.ConfigFileUsed()
		if strings.TrimSpace(configPath) == "" {
			configPath = cfgFile
		}
		if err := deleteConfigFile(configPath); err != nil {
			return err
		}

		fmt.Printf("Configuration file deleted: %s (built-in defaults apply now)\n", configPath)
		return nil
	},
}

func deleteConfigFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("no configuration file found")
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("error deleting configuration file: %w", err)
	}
	if err := os.Remove(path + ".rejected"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error deleting rejected configuration copy: %w", err)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
