// Package config handles configuration for the guardbox CLI, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the guardbox core.
//
// Fields:
//   - DataDir: directory holding the two persisted collections.
//   - FreezeThreshold: consecutive failed logins before an account freeze.
//   - FreezeDuration: how long a frozen account stays frozen.
//   - CodeValidityDuration: lifetime of an emergency verification code.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use
//     the test default outside development.
//   - SessionValidityDuration: session token lifetime.
type Config struct {
	DataDir                 string
	FreezeThreshold         int
	FreezeDuration          time.Duration
	CodeValidityDuration    time.Duration
	SecretKey               string
	SessionValidityDuration time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: SecretKey is insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DataDir = "./data"
	c.FreezeThreshold = 5
	c.FreezeDuration = 30 * time.Second
	c.CodeValidityDuration = 5 * time.Minute
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 1 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
