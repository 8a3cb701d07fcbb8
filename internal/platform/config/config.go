// Package config loads server configuration with viper.
//
// Precedence (highest to lowest): CLI flags, PEOPLEBOOK_* environment
// variables, an optional YAML config file, built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Server captures process-level configuration.
type Server struct {
	// Addr is the listen address for the HTTP server.
	Addr string `mapstructure:"addr"`
	// DatabaseURL is a pgx connection string. Empty selects the in-memory
	// store, which keeps local development dependency-free.
	DatabaseURL string `mapstructure:"database-url"`
	// LogFormat is "text" or "json".
	LogFormat string `mapstructure:"log-format"`
	// LogLevel is debug/info/warn/error.
	LogLevel string `mapstructure:"log-level"`
}

// Defaults returns the built-in configuration.
func Defaults() Server {
	return Server{
		Addr:      ":8080",
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// Load builds a Server config from the optional YAML file at cfgFile,
// PEOPLEBOOK_* environment variables (dashes become underscores, e.g.
// PEOPLEBOOK_DATABASE_URL), and the given flag set (nil is fine).
func Load(cfgFile string, flags *pflag.FlagSet) (Server, error) {
	v := viper.New()

	def := Defaults()
	v.SetDefault("addr", def.Addr)
	v.SetDefault("database-url", def.DatabaseURL)
	v.SetDefault("log-format", def.LogFormat)
	v.SetDefault("log-level", def.LogLevel)

	v.SetEnvPrefix("PEOPLEBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Server{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("peoplebook")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// Missing default config is fine; a malformed one is not.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Server{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Server{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return Server{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
