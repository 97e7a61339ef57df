package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/marsdash/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. MARSDASH_PORT.
const EnvPrefix = "MARSDASH_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (MARSDASH_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: MARSDASH_BACKEND_URL -> backend_url, etc.
	// MARSDASH_ROVERS is a comma-separated list.
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if key == "rovers" {
			return key, splitAndTrim(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.Rovers = trimRovers(cfg.Rovers)
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.BackendURL == "" {
		return fmt.Errorf("backend_url is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend_url %q: %w", c.BackendURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend_url %q: scheme must be http or https", c.BackendURL)
	}

	if len(c.Rovers) == 0 {
		return fmt.Errorf("rovers must list at least one rover")
	}
	seen := make(map[string]bool, len(c.Rovers))
	for _, r := range c.Rovers {
		if r == "" {
			return fmt.Errorf("rovers must not contain empty names")
		}
		if seen[r] {
			return fmt.Errorf("duplicate rover %q", r)
		}
		seen[r] = true
	}

	if c.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("fetch_timeout_seconds must be non-negative")
	}
	if c.FetchRetryMax < 0 {
		return fmt.Errorf("fetch_retry_max must be non-negative")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// FetchTimeout is the per-request timeout for backend calls. Zero disables it.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// trimRovers drops surrounding whitespace from catalog names. Rover names are
// case-sensitive, so nothing else is normalized.
func trimRovers(rovers []string) []string {
	out := make([]string, 0, len(rovers))
	for _, r := range rovers {
		out = append(out, strings.TrimSpace(r))
	}
	return out
}
