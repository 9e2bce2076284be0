// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

// Package config loads server configuration from defaults, an optional
// YAML file, command-line flags, and environment variables.
//
// Precedence, lowest to highest: flag defaults, config file, flags set
// on the command line, environment variables. Secrets (database URL,
// JWT signing secret, SMTP password) are expected from the environment
// in deployments; the file and flag paths exist for development.
package config

import (
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Default values for server flags.
const (
	DefaultAddr        = ":8080"
	DefaultMetricsAddr = "127.0.0.1:9100"
	DefaultLogFormat   = "json"
	DefaultLogLevel    = "info"
	DefaultSMTPPort    = 587
)

// Environment variables consulted by Load. They override file and flag
// values so deployments never need secrets on the command line.
const (
	EnvDatabaseURL  = "DATABASE_URL"
	EnvJWTSecret    = "CINEDEX_JWT_SECRET"
	EnvSMTPPassword = "CINEDEX_SMTP_PASSWORD"
)

// Config holds the full server configuration.
type Config struct {
	// Addr is the HTTP API listen address.
	Addr string `koanf:"addr"`

	// MetricsAddr is the metrics/health listen address. Empty disables
	// the observability server.
	MetricsAddr string `koanf:"metrics-addr"`

	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string `koanf:"database-url"`

	// JWTSecret signs bearer tokens. The server refuses to start
	// without one.
	JWTSecret string `koanf:"jwt-secret"`

	LogFormat string `koanf:"log-format"`
	LogLevel  string `koanf:"log-level"`

	// CORSOrigins are glob patterns matched against the Origin header.
	CORSOrigins []string `koanf:"cors-origins"`

	// SMTP settings for outbound mail. Empty host selects the log-only
	// mailer.
	SMTPHost     string `koanf:"smtp-host"`
	SMTPPort     int    `koanf:"smtp-port"`
	SMTPUsername string `koanf:"smtp-username"`
	SMTPPassword string `koanf:"smtp-password"`
	SMTPFrom     string `koanf:"smtp-from"`
}

// RegisterFlags defines the configuration flags with their defaults.
// Flag names double as koanf keys, so file and flag sources stay in sync.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("addr", DefaultAddr, "HTTP API listen address")
	fs.String("metrics-addr", DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	fs.String("database-url", "", "PostgreSQL connection string (or DATABASE_URL)")
	fs.String("log-format", DefaultLogFormat, "log format (json or text)")
	fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.StringSlice("cors-origins", []string{"*"}, "allowed CORS origin patterns")
	fs.String("smtp-host", "", "SMTP host for outbound mail (empty = log mailer)")
	fs.Int("smtp-port", DefaultSMTPPort, "SMTP port")
	fs.String("smtp-username", "", "SMTP username")
	fs.String("smtp-from", "", "From address for outbound mail")
}

// Load builds a Config from the given file path (optional) and flag set.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_LOAD_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if fs != nil {
		// Passing k lets posflag skip flag defaults for keys the file
		// already set, so the file wins over unset flags.
		if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_LOAD_FAILED").Wrap(err)
		}
	}

	// Environment overrides for secrets.
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		_ = k.Set("database-url", v)
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		_ = k.Set("jwt-secret", v)
	}
	if v := os.Getenv(EnvSMTPPassword); v != "" {
		_ = k.Set("smtp-password", v)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_PARSE_FAILED").Wrap(err)
	}
	return &cfg, nil
}

// Validate checks that the configuration can run a server.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("addr is required")
	}
	if c.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").
			Errorf("database url is required (set %s)", EnvDatabaseURL)
	}
	if c.JWTSecret == "" {
		return oops.Code("CONFIG_INVALID").
			Errorf("jwt signing secret is required (set %s)", EnvJWTSecret)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").
			Errorf("log-format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.LogLevel)) {
		return oops.Code("CONFIG_INVALID").
			Errorf("log-level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	if c.SMTPHost != "" {
		if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
			return oops.Code("CONFIG_INVALID").
				Errorf("smtp-port must be in 1..65535, got %d", c.SMTPPort)
		}
		if c.SMTPFrom == "" {
			return oops.Code("CONFIG_INVALID").
				Errorf("smtp-from is required when smtp-host is set")
		}
	}
	return nil
}

// MailEnabled reports whether outbound SMTP mail is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}
