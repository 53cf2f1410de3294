package cmd

import (
	"fmt"
	"gobill/config"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active gobill config file in your editor.

Editor selection order:
1) $VISUAL
2) $EDITOR
3) vi

If no config file exists yet, this command creates one with an example template first.
After the editor exits, the content is validated as gobill YAML config. Invalid content
is moved to <config>.rejected and the previous file is restored.`,
	Example: `
  # Edit active config
  gobill config edit

  # Edit with a specific editor
  EDITOR="code --wait" gobill config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := ensureConfigFileWithTemplate(configPath)
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("No config file found. Created example config at: %s\n", configPath)
		}

		editorArgs, err := editorCommandLine(os.Getenv("VISUAL"), os.Getenv("EDITOR"), configPath)
		if err != nil {
			return err
		}

		cfg, err := editConfig(configPath, func() error {
			editorCommand := exec.Command(editorArgs[0], editorArgs[1:]...)
			editorCommand.Stdin = os.Stdin
			editorCommand.Stdout = os.Stdout
			editorCommand.Stderr = os.Stderr
			return editorCommand.Run()
		})
		if err != nil {
			return err
		}

		fmt.Printf("Configuration saved and validated: %s\n", configPath)
		fmt.Println(describeConfig(cfg))
		return nil
	},
}

// editConfig runs the editor on path and validates the result. Rejected
// content is kept next to the file and the previous content is restored.
func editConfig(path string, runEditor func() error) (*config.Config, error) {
	previous, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config before edit failed: %w", err)
	}

	if err := runEditor(); err != nil {
		return nil, fmt.Errorf("opening editor failed: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading edited config failed: %w", err)
	}
	cfg, validateErr := config.ValidateYAMLContent(content)
	if validateErr == nil {
		return cfg, nil
	}

	rejectedPath := path + ".rejected"
	if err := os.WriteFile(rejectedPath, content, 0o600); err != nil {
		return nil, fmt.Errorf("config validation failed in %s: %w (saving rejected copy failed: %v)", path, validateErr, err)
	}
	if err := os.WriteFile(path, previous, 0o600); err != nil {
		return nil, fmt.Errorf("config validation failed in %s: %w (restoring previous config failed: %v)", path, validateErr, err)
	}
	return nil, fmt.Errorf("config validation failed, previous config restored and edit kept at %s: %w", rejectedPath, validateErr)
}

func resolveConfigEditPath(configFileFlag, configFileUsed string) (string, error) {
	for _, candidate := range []string{configFileFlag, configFileUsed} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".gobill.yaml"), nil
}

func ensureConfigFileWithTemplate(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory failed: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("creating example config failed: %w", err)
	}
	return true, nil
}

// describeConfig renders a one-line summary of the values that shape an export.
func describeConfig(cfg *config.Config) string {
	historyDB := cfg.History.DB
	if strings.TrimSpace(historyDB) == "" {
		historyDB = "disabled"
	}
	return fmt.Sprintf(
		"port=%d session_ttl=%s sheet=%q file=%s title_font_size=%g history=%s",
		cfg.Server.Port,
		cfg.Server.SessionTTL,
		cfg.Export.SheetName,
		cfg.Export.FileName,
		cfg.Export.TitleFontSize,
		historyDB,
	)
}

// editorCommandLine picks $VISUAL, then $EDITOR, then vi, splits it into
// arguments and appends the config path.
func editorCommandLine(visual, editor, configPath string) ([]string, error) {
	value := "vi"
	for _, candidate := range []string{visual, editor} {
		if strings.TrimSpace(candidate) != "" {
			value = candidate
			break
		}
	}

	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return append(fields, configPath), nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
