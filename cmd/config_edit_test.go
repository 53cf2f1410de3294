package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gobill/config"
)

func TestResolveConfigEditPath(t *testing.T) {
	t.Run("explicit flag wins", func(t *testing.T) {
		got, err := resolveConfigEditPath("./custom.yaml", "/tmp/active.yaml")
		if err != nil || got != "./custom.yaml" {
			t.Fatalf("expected explicit config path, got %q (%v)", got, err)
		}
	})

	t.Run("active config without flag", func(t *testing.T) {
		got, err := resolveConfigEditPath("  ", "/tmp/active.yaml")
		if err != nil || got != "/tmp/active.yaml" {
			t.Fatalf("expected active config path, got %q (%v)", got, err)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		got, err := resolveConfigEditPath("", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := filepath.Join(home, ".gobill.yaml"); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	})
}

func TestEnsureConfigFileWithTemplate(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "gobill.yaml")

	created, err := ensureConfigFileWithTemplate(configPath)
	if err != nil || !created {
		t.Fatalf("expected template to be created, created=%t err=%v", created, err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("stat config file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected config file mode 0600, got %o", info.Mode().Perm())
	}
	if _, err := config.ValidateYAMLContent([]byte(config.ExampleYAML())); err != nil {
		t.Fatalf("expected example template to validate: %v", err)
	}

	created, err = ensureConfigFileWithTemplate(configPath)
	if err != nil || created {
		t.Fatalf("did not expect existing file to be recreated, created=%t err=%v", created, err)
	}
}

func TestEditConfig(t *testing.T) {
	t.Run("accepts valid edit", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gobill.yaml")
		if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cfg, err := editConfig(path, func() error {
			return os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600)
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Server.Port != 9090 || cfg.Export.SheetName != "Billing" {
			t.Fatalf("unexpected config after edit: %+v", cfg)
		}
	})

	t.Run("restores previous content on invalid edit", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gobill.yaml")
		if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		invalid := "export:\n  sheet_name: \"Bad[Name]\"\n"

		_, err := editConfig(path, func() error {
			return os.WriteFile(path, []byte(invalid), 0o600)
		})
		if err == nil || !strings.Contains(err.Error(), "previous config restored") {
			t.Fatalf("expected validation error, got %v", err)
		}

		restored, _ := os.ReadFile(path)
		if string(restored) != config.ExampleYAML() {
			t.Fatalf("expected previous config to be restored, got:\n%s", restored)
		}
		rejected, _ := os.ReadFile(path + ".rejected")
		if string(rejected) != invalid {
			t.Fatalf("expected rejected edit to be kept, got:\n%s", rejected)
		}
	})

	t.Run("reports editor failure", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gobill.yaml")
		if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}

		_, err := editConfig(path, func() error { return errors.New("exit status 1") })
		if err == nil || !strings.Contains(err.Error(), "opening editor failed") {
			t.Fatalf("expected editor error, got %v", err)
		}
	})
}

func TestEditorCommandLine(t *testing.T) {
	tests := []struct {
		name   string
		visual string
		editor string
		want   []string
	}{
		{name: "visual wins", visual: "code --wait", editor: "nano", want: []string{"code", "--wait", "/tmp/cfg.yaml"}},
		{name: "editor fallback", visual: " ", editor: "nano", want: []string{"nano", "/tmp/cfg.yaml"}},
		{name: "default vi", want: []string{"vi", "/tmp/cfg.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := editorCommandLine(tt.visual, tt.editor, "/tmp/cfg.yaml")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestDescribeConfig(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, SessionTTL: 2 * time.Hour},
		Export: config.ExportConfig{SheetName: "Billing", FileName: "billing.xlsx", TitleFontSize: 16},
	}

	got := describeConfig(cfg)
	want := `port=8080 session_ttl=2h0m0s sheet="Billing" file=billing.xlsx title_font_size=16 history=disabled`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
