package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if len(cfg.Rovers) != 3 || cfg.Rovers[0] != "Spirit" || cfg.Rovers[2] != "Curiosity" {
		t.Errorf("unexpected default rovers %v", cfg.Rovers)
	}
	if cfg.FetchRetryMax != 3 {
		t.Errorf("expected default fetch_retry_max 3, got %d", cfg.FetchRetryMax)
	}
	if cfg.Title != DefaultTitle {
		t.Errorf("expected default title %q, got %q", DefaultTitle, cfg.Title)
	}
}

func TestDefaultConfigRoversAreCopied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rovers[0] = "Perseverance"
	if DefaultRovers[0] != "Spirit" {
		t.Error("mutating a config must not change DefaultRovers")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.marsdash.yml")

	original := DefaultConfig()
	original.Port = 4100
	original.BackendURL = "https://rovers.example.com/api"
	original.Rovers = []string{"Curiosity", "Perseverance"}
	original.FetchTimeoutSeconds = 12
	original.AllowAllOrigins = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.BackendURL != original.BackendURL {
		t.Errorf("backend_url: got %q, want %q", loaded.BackendURL, original.BackendURL)
	}
	if loaded.FetchTimeout() != 12*time.Second {
		t.Errorf("fetch timeout: got %v, want 12s", loaded.FetchTimeout())
	}
	if !loaded.AllowAllOrigins {
		t.Error("allow_all_origins: expected true")
	}
	if len(loaded.Rovers) != 2 || loaded.Rovers[0] != "Curiosity" || loaded.Rovers[1] != "Perseverance" {
		t.Errorf("rovers: got %v", loaded.Rovers)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.BackendURL != DefaultConfig().BackendURL {
		t.Errorf("expected default backend_url, got %q", cfg.BackendURL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("MARSDASH_BACKEND_URL", "http://backend.internal:9000")
	t.Setenv("MARSDASH_PORT", "8088")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.BackendURL != "http://backend.internal:9000" {
		t.Errorf("env override failed: got %q", loaded.BackendURL)
	}
	if loaded.Port != 8088 {
		t.Errorf("env override failed: got port %d", loaded.Port)
	}
}

func TestLoadEnvRovers(t *testing.T) {
	t.Setenv("MARSDASH_ROVERS", " Spirit, Curiosity ,,")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []string{"Spirit", "Curiosity"}
	if strings.Join(cfg.Rovers, "|") != strings.Join(want, "|") {
		t.Errorf("rovers = %q, want %q", cfg.Rovers, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadEnvRoversOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	t.Setenv("MARSDASH_ROVERS", "Perseverance")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Rovers) != 1 || cfg.Rovers[0] != "Perseverance" {
		t.Errorf("rovers = %q", cfg.Rovers)
	}
}

func TestValidatePortMatchesWizard(t *testing.T) {
	for _, port := range []int{0, 1, 3000, 65535, 65536} {
		cfg := DefaultConfig()
		cfg.Port = port
		cfgErr := cfg.Validate()
		wizErr := validatePort(strconv.Itoa(port))
		if (cfgErr == nil) != (wizErr == nil) {
			t.Errorf("port %d: Validate=%v validatePort=%v", port, cfgErr, wizErr)
		}
	}
}

func TestLoadTrimsRoverNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")
	data := "rovers:\n  - \" Spirit \"\n  - Opportunity\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Rovers) != 2 || cfg.Rovers[0] != "Spirit" {
		t.Errorf("rovers: got %q", cfg.Rovers)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative port", func(c *Config) { c.Port = -1 }},
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"huge port", func(c *Config) { c.Port = 70000 }},
		{"empty backend", func(c *Config) { c.BackendURL = "" }},
		{"non-http backend", func(c *Config) { c.BackendURL = "ftp://example.com" }},
		{"no rovers", func(c *Config) { c.Rovers = nil }},
		{"empty rover", func(c *Config) { c.Rovers = []string{"Spirit", ""} }},
		{"duplicate rover", func(c *Config) { c.Rovers = []string{"Spirit", "Spirit"} }},
		{"negative timeout", func(c *Config) { c.FetchTimeoutSeconds = -1 }},
		{"negative retries", func(c *Config) { c.FetchRetryMax = -2 }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestRoverNamesAreCaseSensitive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rovers = []string{"Spirit", "spirit"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("names differing only by case are distinct rovers: %v", err)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" Spirit , Opportunity ", []string{"Spirit", "Opportunity"}},
		{"Curiosity", []string{"Curiosity"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}

func TestValidatePort(t *testing.T) {
	for _, ok := range []string{"1", "3000", "65535"} {
		if err := validatePort(ok); err != nil {
			t.Errorf("validatePort(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"0", "-3", "abc", "65536"} {
		if err := validatePort(bad); err == nil {
			t.Errorf("validatePort(%q): expected error", bad)
		}
	}
}

func TestValidateBackendURL(t *testing.T) {
	if err := validateBackendURL("http://localhost:8081"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"localhost:8081", "ftp://x", "http://"} {
		if err := validateBackendURL(bad); err == nil {
			t.Errorf("validateBackendURL(%q): expected error", bad)
		}
	}
}
