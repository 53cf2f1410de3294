/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"github.com/spf13/viper"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gobill/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gobill",
	Short: "Enter billable line items and export them as a billing workbook.",
	Long: `
**********************************************
*              GO BILL GO                    *
**********************************************

This CLI collects a project title and a list of line items (title, duration, price),
computes per-row and grand totals, and exports them as billing.xlsx.

Surfaces:
- serve:  local web page with a live form and "Download XLSX"
- tui:    the same form in the terminal
- export: offline export from a CSV or Excel source

Every export is recorded in a local SQLite history unless --db is empty.
`,
	Example: `
  # Create configuration file
  gobill config create

  # Start the local billing page
  gobill serve

  # Fill the form in the terminal and export with ctrl+s
  gobill tui --title "Acme"

  # Export line items from a CSV source
  gobill export -i entries.csv --title "Acme" -o billing.xlsx

  # Show recent exports
  gobill history
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.gobill.yaml, then ./.gobill.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".gobill" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gobill")
	}

	// GOBILL_SERVER_PORT overrides server.port and so on.
	viper.SetEnvPrefix("gobill")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults cover every key, so a missing file only gets a hint.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: gobill config create")
	}
}
