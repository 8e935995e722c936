// Package config loads the service configuration from a YAML file and the
// environment. Environment variables override file values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by New.
const (
	DefaultListenAddr      = ":8080"
	DefaultCacheTTLSeconds = 600
)

// Config holds the application configuration.
type Config struct {
	// SubscriptionID pins the subscription used when requests name none.
	// Empty means the first subscription visible to the credential.
	SubscriptionID string `yaml:"subscription_id"`

	ListenAddr string `yaml:"listen_addr"`

	// CORSOrigins are the allowed CORS origins. "*" allows any.
	CORSOrigins []string `yaml:"cors_origins"`

	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`

	// ARMEndpoint overrides the management endpoint, for tests.
	ARMEndpoint string `yaml:"arm_endpoint"`
}

// New returns a Config with defaults applied.
func New() *Config {
	return &Config{
		ListenAddr:      DefaultListenAddr,
		CORSOrigins:     []string{"*"},
		CacheTTLSeconds: DefaultCacheTTLSeconds,
	}
}

// LoadFile reads and parses the configuration from a YAML file, on top of
// the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	return cfg, nil
}

// Load builds the effective configuration: defaults, then the optional file,
// then environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := New()
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := firstEnv("AZCAP_SUBSCRIPTION_ID", "AZURE_SUBSCRIPTION_ID"); v != "" {
		c.SubscriptionID = v
	}
	if v := os.Getenv("AZCAP_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := firstEnv("AZCAP_CORS_ORIGINS", "CORS_ALLOW_ORIGINS"); v != "" {
		c.CORSOrigins = splitOrigins(v)
	}
	if v := firstEnv("AZCAP_CACHE_TTL", "CACHE_TTL_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid cache TTL %q: %w", v, err)
		}
		c.CacheTTLSeconds = n
	}
	if v := os.Getenv("AZCAP_ARM_ENDPOINT"); v != "" {
		c.ARMEndpoint = v
	}
	return nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("cache_ttl_seconds must be positive, got %d", c.CacheTTLSeconds)
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("cors_origins must not be empty; use \"*\" to allow any origin")
	}
	return nil
}

// TTL returns the default cache TTL as a duration.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
