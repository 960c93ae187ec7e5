package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/balkashynov/daybook/internal/timeutil"
)

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ReportConfig struct {
	Mode string `mapstructure:"mode"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Report   ReportConfig   `mapstructure:"report"`
	Timezone string         `mapstructure:"timezone"`
}

// Location resolves the configured civil timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := timeutil.LoadZone(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Dir returns ~/.daybook, where the database and config file live by default
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".daybook"), nil
}

// Load reads configuration from path (e.g. "config.yaml"). When path is empty
// it looks for config.yaml in ~/.daybook and the working directory; a missing
// file there is fine and defaults apply.
func Load(path string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("resolve home: %w", err)
	}

	v := viper.New()
	v.SetDefault("database.path", filepath.Join(dir, "daybook.db"))
	v.SetDefault("database.log_mode", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("report.mode", "hours")
	v.SetDefault("timezone", timeutil.DefaultZone)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. DAYBOOK_DATABASE_PATH=/tmp/d.db
	v.SetEnvPrefix("DAYBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &c, nil
}
