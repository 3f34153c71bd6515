// Package config holds the process-wide configuration. It is built once
// at startup and read-only afterwards; components receive it by
// constructor injection.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config is the immutable startup configuration.
type Config struct {
	// APIKey authenticates every archive call. Required. Never logged.
	APIKey string `yaml:"api_key"`
	// BaseURL of the archive API; empty selects the production endpoint.
	BaseURL string `yaml:"base_url"`
	// Timeout bounds each outbound archive call.
	Timeout time.Duration `yaml:"timeout"`
	// Transport is "stdio" (default) or "http".
	Transport string `yaml:"transport"`
	// Listen is the bind address for the http transport.
	Listen string `yaml:"listen"`
	// MetricsListen, when set, starts the diagnostics server.
	MetricsListen string `yaml:"metrics_listen"`
	// LogLevel is debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
	// ToolAllowlist restricts which catalogue tools are registered.
	// Empty means all.
	ToolAllowlist []string `yaml:"tool_allowlist"`
}

// Default returns the configuration before flags, env, or file overrides.
func Default() Config {
	return Config{
		Timeout:   30 * time.Second,
		Transport: TransportStdio,
		Listen:    "127.0.0.1:8420",
		LogLevel:  "info",
	}
}

// LoadFile merges a YAML config file into cfg. Values already set by
// the caller (flags) win over file values, so the file is applied to
// the zero fields only where that distinction exists; in practice main
// loads the file first and lets flags override afterwards.
func LoadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// FromEnv fills unset fields from SDA_* environment variables.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("SDA_API_KEY")
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv("SDA_BASE_URL")
	}
	if raw := os.Getenv("SDA_TOOL_ALLOWLIST"); raw != "" && len(c.ToolAllowlist) == 0 {
		c.ToolAllowlist = SplitCSV(raw)
	}
}

// Validate checks the configuration once at startup.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("api key is required (--api-key or SDA_API_KEY)")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport must be %q or %q, got %q", TransportStdio, TransportHTTP, c.Transport)
	}
	if c.Transport == TransportHTTP && strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("listen address is required for the http transport")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	return nil
}

// Redacted returns the config view safe for diagnostics. The API key is
// reduced to a presence marker.
func (c *Config) Redacted() map[string]any {
	key := "unset"
	if c.APIKey != "" {
		key = "set"
	}
	return map[string]any{
		"api_key":        key,
		"base_url":       c.BaseURL,
		"timeout":        c.Timeout.String(),
		"transport":      c.Transport,
		"listen":         c.Listen,
		"metrics_listen": c.MetricsListen,
		"log_level":      c.LogLevel,
		"tool_allowlist": strings.Join(c.ToolAllowlist, ","),
	}
}

// SplitCSV parses a comma-separated list, dropping empty entries.
func SplitCSV(raw string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
