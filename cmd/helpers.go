package cmd

import (
	"fmt"

	"github.com/ziadkadry99/marsdash/internal/config"
	"github.com/ziadkadry99/marsdash/internal/fetcher"
	"github.com/ziadkadry99/marsdash/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
// It also applies the effective log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `marsdash init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	if err := logging.SetLevel(effectiveLogLevel(cfg)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// effectiveLogLevel applies --verbose and --log-level over the config file.
func effectiveLogLevel(cfg *config.Config) string {
	switch {
	case verbose:
		return "debug"
	case logLevel != "":
		return logLevel
	default:
		return cfg.LogLevel
	}
}

// newFetcherFromConfig creates the backend client shared by server and probe.
func newFetcherFromConfig(cfg *config.Config) (*fetcher.Client, error) {
	return fetcher.New(fetcher.Options{
		BaseURL:  cfg.BackendURL,
		Timeout:  cfg.FetchTimeout(),
		RetryMax: cfg.FetchRetryMax,
		Logger:   logging.Log,
	})
}
