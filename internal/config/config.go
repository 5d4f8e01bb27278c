// Package config loads settings from flags, environment and an optional
// config file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings of both binaries. Each binary reads the keys it
// registered flags for.
type Config struct {
	APIURL    string        `mapstructure:"api_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	LogLevel  string        `mapstructure:"log_level"`
	LogFile   string        `mapstructure:"log_file"`
	Addr      string        `mapstructure:"addr"`
	Seed      bool          `mapstructure:"seed"`
	RateLimit float64       `mapstructure:"rate_limit"`
	RateBurst int           `mapstructure:"rate_burst"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"api-url":    "api_url",
	"timeout":    "timeout",
	"log-level":  "log_level",
	"log-file":   "log_file",
	"addr":       "addr",
	"seed":       "seed",
	"rate-limit": "rate_limit",
	"rate-burst": "rate_burst",
}

// ClientFlags registers the flags of the inventory client.
func ClientFlags(fs *pflag.FlagSet) {
	fs.String("api-url", "", "items API base URL (env INVENTORY_API_URL or API_URL)")
	fs.Duration("timeout", 0, "per-request timeout, 0 keeps the transport default")
	commonFlags(fs)
}

// ServerFlags registers the flags of the reference items server.
func ServerFlags(fs *pflag.FlagSet) {
	fs.String("addr", ":5000", "listen address")
	fs.Bool("seed", true, "start with sample products")
	fs.Float64("rate-limit", 0, "requests per second per client, 0 disables limiting")
	fs.Int("rate-burst", 5, "rate limiter burst")
	commonFlags(fs)
}

func commonFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-file", "", "also write logs to this file")
	fs.StringP("config", "c", "", "config file (default ./inventory.yaml if present)")
}

// Load merges, from lowest to highest precedence, defaults, the config file,
// the environment and flags set on the command line.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("addr", ":5000")
	v.SetDefault("seed", true)
	v.SetDefault("rate_burst", 5)

	v.SetEnvPrefix("INVENTORY")
	v.AutomaticEnv()
	if err := v.BindEnv("api_url", "INVENTORY_API_URL", "API_URL"); err != nil {
		return Config{}, err
	}

	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, err
			}
		}
	}

	if err := readConfigFile(v, fs); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, fs *pflag.FlagSet) error {
	path := ""
	if f := fs.Lookup("config"); f != nil {
		path = f.Value.String()
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("inventory")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}
