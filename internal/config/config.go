// Package config loads kidbuckets configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	API      APIConfig      `mapstructure:"api"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// APIConfig holds the Lunch Money endpoint settings.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// KIDBUCKETS_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "kidbuckets", "kidbuckets.db"))
	v.SetDefault("api.base_url", "https://dev.lunchmoney.app/v1")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("KIDBUCKETS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "kidbuckets"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("KIDBUCKETS")
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
