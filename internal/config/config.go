// Package config loads service configuration with viper.
//
// Precedence, lowest first: built-in defaults, an optional config file,
// NUMCLASS_* environment variables, then bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. NUMCLASS_TRIVIA_TIMEOUT.
const EnvPrefix = "NUMCLASS"

// Config is the complete service configuration.
type Config struct {
	Listen          string        `mapstructure:"listen"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	Log    LogConfig    `mapstructure:"log"`
	Trivia TriviaConfig `mapstructure:"trivia"`
	CORS   CORSConfig   `mapstructure:"cors"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// TriviaConfig points at the fun-fact provider.
type TriviaConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Category string        `mapstructure:"category"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Fallback string        `mapstructure:"fallback"`
}

// CORSConfig is the cross-origin policy applied to every response.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Listen:          "0.0.0.0:8000",
		ShutdownTimeout: 5 * time.Second,
		Log: LogConfig{
			Level: "info",
		},
		Trivia: TriviaConfig{
			BaseURL:  "http://numbersapi.com",
			Category: "math",
			Timeout:  3 * time.Second,
			Fallback: "No fun fact available.",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET"},
			AllowedHeaders: []string{"*"},
		},
	}
}

// FlagKeys maps command-line flag names onto config keys.
var FlagKeys = map[string]string{
	"listen":           "listen",
	"shutdown-timeout": "shutdown_timeout",
	"log-level":        "log.level",
	"log-development":  "log.development",
	"trivia-url":       "trivia.base_url",
	"trivia-timeout":   "trivia.timeout",
}

// Load resolves configuration. path may be empty, in which case no file is
// read. flags may be nil; only flags named in FlagKeys are bound.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("listen", d.Listen)
	v.SetDefault("shutdown_timeout", d.ShutdownTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("trivia.base_url", d.Trivia.BaseURL)
	v.SetDefault("trivia.category", d.Trivia.Category)
	v.SetDefault("trivia.timeout", d.Trivia.Timeout)
	v.SetDefault("trivia.fallback", d.Trivia.Fallback)
	v.SetDefault("cors.allowed_origins", d.CORS.AllowedOrigins)
	v.SetDefault("cors.allowed_methods", d.CORS.AllowedMethods)
	v.SetDefault("cors.allowed_headers", d.CORS.AllowedHeaders)
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Listen) == "" {
		errs = append(errs, errors.New("listen address is required"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be > 0"))
	}
	if c.Trivia.Timeout <= 0 {
		errs = append(errs, errors.New("trivia.timeout must be > 0"))
	}
	if u, err := url.Parse(c.Trivia.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("trivia.base_url %q must be an absolute http(s) URL", c.Trivia.BaseURL))
	}
	if len(c.CORS.AllowedMethods) == 0 {
		errs = append(errs, errors.New("cors.allowed_methods must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
