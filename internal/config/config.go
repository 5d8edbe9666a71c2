// Package config handles the terminal's startup configuration: defaults,
// JSON file overlay and environment overrides. Configuration is read once
// at startup and treated as immutable afterwards; an unusable configuration
// is fatal before the terminal accepts any input.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// ErrInvalid indicates an unusable configuration. It is fatal at startup.
var ErrInvalid = errors.New("invalid configuration")

// SensitiveString is a string with sensitive content. Its value is redacted
// in fmt and slog output.
type SensitiveString string

// String implements fmt.Stringer, redacting non-empty values.
func (s SensitiveString) String() string {
	if s == "" {
		return ""
	}
	return "<redacted>"
}

// LogValue implements slog.LogValuer, redacting non-empty values.
func (s SensitiveString) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// Config holds runtime settings for the terminal.
//
// Durations are specified in JSON as strings like "30s" or "24h".
type Config struct {
	// Billing service access
	BillingURL         string          `json:"billing_url"`
	BillingUsername    string          `json:"billing_username"`
	BillingPasswordMD5 SensitiveString `json:"billing_password_md5"`
	BillingAppKey      SensitiveString `json:"billing_app_key"`
	BillingCID         uint32          `json:"billing_cid"`
	RequestTimeout     Duration        `json:"request_timeout"`

	// Purchasable articles, in display order
	ArticleIDs []string `json:"article_ids"`

	// Directory refresh policy
	RefreshInterval Duration `json:"refresh_interval"` // soft refresh interval
	HardTTL         Duration `json:"hard_ttl"`         // fail-closed snapshot age limit

	// Transaction flow
	InactivityTimeout Duration `json:"inactivity_timeout"`
	DisplayHold       Duration `json:"display_hold"`
	MaxQuantity       int      `json:"max_quantity"`

	// Purchase submission retry policy
	SubmitAttempts int      `json:"submit_attempts"`
	SubmitBackoff  Duration `json:"submit_backoff"` // initial backoff, doubled per attempt

	// Card reader
	ReadAttempts   int      `json:"read_attempts"`   // bounded retry on recoverable read errors
	DebounceWindow Duration `json:"debounce_window"` // duplicate tap suppression

	// Telemetry (optional; empty token disables)
	TelemetryURL   string          `json:"telemetry_url"`
	TelemetryToken SensitiveString `json:"telemetry_token"`
	DeviceID       string          `json:"device_id"`
}

// LoadDefaults populates c with sensible defaults. Billing access has no
// usable default and must be configured per device.
func (c *Config) LoadDefaults() {
	c.BillingURL = "https://www.vereinsflieger.de/interface/rest"
	c.RequestTimeout = Duration(10 * time.Second)
	c.RefreshInterval = Duration(24 * time.Hour)
	c.HardTTL = Duration(72 * time.Hour)
	c.InactivityTimeout = Duration(30 * time.Second)
	c.DisplayHold = Duration(5 * time.Second)
	c.MaxQuantity = 9
	c.SubmitAttempts = 3
	c.SubmitBackoff = Duration(500 * time.Millisecond)
	c.ReadAttempts = 3
	c.DebounceWindow = Duration(3 * time.Second)
	c.TelemetryURL = "https://api-eu.mixpanel.com"
}

// Load builds a Config by applying defaults, overlaying the JSON file at
// path (if it exists) and finally environment variables. The resulting
// configuration is validated; a validation failure wraps ErrInvalid.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalid, path, err)
		}
	case os.IsNotExist(err):
		// No config file, rely on defaults and environment
	default:
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInvalid, path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays configuration values from environment variables.
// Only credentials and the billing URL can be overridden, so secrets can be
// kept out of the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("TND_BILLING_URL"); v != "" {
		c.BillingURL = v
	}
	if v := os.Getenv("TND_BILLING_USERNAME"); v != "" {
		c.BillingUsername = v
	}
	if v := os.Getenv("TND_BILLING_PASSWORD_MD5"); v != "" {
		c.BillingPasswordMD5 = SensitiveString(v)
	}
	if v := os.Getenv("TND_BILLING_APP_KEY"); v != "" {
		c.BillingAppKey = SensitiveString(v)
	}
	if v := os.Getenv("TND_TELEMETRY_TOKEN"); v != "" {
		c.TelemetryToken = SensitiveString(v)
	}
}

// Validate checks the configuration for values the terminal cannot run
// with. All failures wrap ErrInvalid.
func (c *Config) Validate() error {
	checks := []struct {
		bad bool
		msg string
	}{
		{c.BillingURL == "", "billing_url must be set"},
		{c.BillingUsername == "", "billing_username must be set"},
		{c.BillingPasswordMD5 == "", "billing_password_md5 must be set"},
		{c.BillingAppKey == "", "billing_app_key must be set"},
		{len(c.ArticleIDs) == 0, "article_ids must list at least one article"},
		{len(c.ArticleIDs) > 9, "article_ids must fit on a single keypad digit (max 9)"},
		{c.MaxQuantity < 1 || c.MaxQuantity > 9, "max_quantity must be between 1 and 9"},
		{c.SubmitAttempts < 1, "submit_attempts must be at least 1"},
		{c.ReadAttempts < 1, "read_attempts must be at least 1"},
		{c.RequestTimeout <= 0, "request_timeout must be positive"},
		{c.RefreshInterval <= 0, "refresh_interval must be positive"},
		{c.HardTTL < c.RefreshInterval, "hard_ttl must not be shorter than refresh_interval"},
		{c.InactivityTimeout <= 0, "inactivity_timeout must be positive"},
		{c.DisplayHold <= 0, "display_hold must be positive"},
	}
	for _, check := range checks {
		if check.bad {
			return fmt.Errorf("%w: %s", ErrInvalid, check.msg)
		}
	}
	return nil
}
