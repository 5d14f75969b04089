package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string
	DateFormat     string
	FiscalYear     int
}

// Load reads configuration from file and env. Env var overrides use prefix MEIBOOKS_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "meibooks", "meibooks.db"))
	v.SetDefault("ui.currency_symbol", "R$")
	v.SetDefault("ui.date_format", "02/01/2006")
	v.SetDefault("ui.fiscal_year", time.Now().Year())

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MEIBOOKS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "meibooks"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MEIBOOKS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the settings view for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("MEIBOOKS_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "meibooks", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.fiscal_year", cfg.UI.FiscalYear)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
