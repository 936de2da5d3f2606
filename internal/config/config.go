package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	Sheets   SheetsConfig   `yaml:"sheets" mapstructure:"sheets"`
	Followup FollowupConfig `yaml:"followup" mapstructure:"followup"`
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// SourceConfig selects and configures the spreadsheet source.
type SourceConfig struct {
	// Driver is "sheets" (Google Sheets API), "xlsx", or "csv".
	Driver string `yaml:"driver" mapstructure:"driver"`
	// Path is the workbook location for file drivers: a local path or an
	// http(s) URL.
	Path string `yaml:"path" mapstructure:"path"`
	// Worksheet names the sheet inside an xlsx workbook (default: first).
	Worksheet string `yaml:"worksheet" mapstructure:"worksheet"`
	// Encoding optionally names the charset of a CSV file (e.g. "windows-1252").
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
	// MaxAttempts enables load retries when > 1. The dashboard defaults to a
	// single attempt; failures are reported to the user, not retried silently.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// SheetsConfig holds Google Sheets API credentials and the sheet handle.
type SheetsConfig struct {
	SpreadsheetID string  `yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	Worksheet     string  `yaml:"worksheet" mapstructure:"worksheet"`
	APIKey        string  `yaml:"api_key" mapstructure:"api_key"`
	Token         string  `yaml:"token" mapstructure:"token"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	RatePerSec    float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// FollowupConfig bounds the pending follow-up day window. The window is
// exclusive of MinDays and inclusive of MaxDays.
type FollowupConfig struct {
	MinDays int `yaml:"min_days" mapstructure:"min_days"`
	MaxDays int `yaml:"max_days" mapstructure:"max_days"`
}

// ClassifyConfig configures the machine-type classifier.
type ClassifyConfig struct {
	// RulesPath optionally points to a YAML file overriding the built-in
	// keyword rule table.
	RulesPath string `yaml:"rules_path" mapstructure:"rules_path"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source.driver", "sheets")
	v.SetDefault("source.max_attempts", 1)
	v.SetDefault("sheets.worksheet", "Sheet1")
	v.SetDefault("sheets.base_url", "https://sheets.googleapis.com/v4")
	v.SetDefault("sheets.rate_per_sec", 1.0)
	v.SetDefault("followup.min_days", 20)
	v.SetDefault("followup.max_days", 30)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configured source can actually be constructed.
func (c *Config) Validate() error {
	switch c.Source.Driver {
	case "sheets":
		if c.Sheets.SpreadsheetID == "" {
			return eris.New("config: sheets.spreadsheet_id is required for the sheets driver")
		}
		if c.Sheets.APIKey == "" && c.Sheets.Token == "" {
			return eris.New("config: sheets.api_key or sheets.token is required for the sheets driver")
		}
	case "xlsx", "csv":
		if c.Source.Path == "" {
			return eris.Errorf("config: source.path is required for the %s driver", c.Source.Driver)
		}
	default:
		return eris.Errorf("config: unknown source driver %q", c.Source.Driver)
	}

	if c.Followup.MinDays >= c.Followup.MaxDays {
		return eris.Errorf("config: followup window (%d, %d] is empty", c.Followup.MinDays, c.Followup.MaxDays)
	}

	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
