package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyServerPort          = "server.port"
	KeyServerSessionTTL    = "server.session_ttl"
	KeyExportSheetName     = "export.sheet_name"
	KeyExportFileName      = "export.file_name"
	KeyExportTitleFontSize = "export.title_font_size"
	KeyHistoryDB           = "history.db"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Export  ExportConfig  `mapstructure:"export"`
	History HistoryConfig `mapstructure:"history"`
}

type ServerConfig struct {
	Port       int           `mapstructure:"port" validate:"min=1,max=65535"`
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"min=1m"`
}

type ExportConfig struct {
	SheetName     string  `mapstructure:"sheet_name" validate:"required,max=31"`
	FileName      string  `mapstructure:"file_name" validate:"required"`
	TitleFontSize float64 `mapstructure:"title_font_size" validate:"min=1,max=409"`
}

type HistoryConfig struct {
	// DB is the SQLite path for the export history. Empty disables history.
	DB string `mapstructure:"db"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# gobill configuration
server:
  port: 8080
  session_ttl: 2h

export:
  sheet_name: "Billing"
  file_name: "billing.xlsx"
  title_font_size: 16

history:
  db: "./gobill.db"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateExport(cfg.Export); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerPort, 8080)
	v.SetDefault(KeyServerSessionTTL, 2*time.Hour)
	v.SetDefault(KeyExportSheetName, "Billing")
	v.SetDefault(KeyExportFileName, "billing.xlsx")
	v.SetDefault(KeyExportTitleFontSize, 16)
	v.SetDefault(KeyHistoryDB, "./gobill.db")
}

func validateExport(export ExportConfig) error {
	name := strings.TrimSpace(export.SheetName)
	if name == "" {
		return fmt.Errorf("validation failed: export.sheet_name must not be blank")
	}
	if strings.ContainsAny(name, `:\/?*[]`) {
		return fmt.Errorf("validation failed: export.sheet_name %q contains characters not allowed in sheet names", export.SheetName)
	}
	if !strings.HasSuffix(strings.ToLower(export.FileName), ".xlsx") {
		return fmt.Errorf("validation failed: export.file_name %q must end with .xlsx", export.FileName)
	}
	return nil
}
