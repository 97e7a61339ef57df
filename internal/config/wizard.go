package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to marsdash! Let's configure your dashboard.")
	fmt.Println()

	def := DefaultConfig()

	// 1. Backend endpoint.
	backendPrompt := promptui.Prompt{
		Label:    "Backend URL serving GET /{rover}",
		Default:  def.BackendURL,
		Validate: validateBackendURL,
	}
	backendURL, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}

	// 2. Rover catalog.
	roversPrompt := promptui.Prompt{
		Label:   "Rovers (comma-separated, case-sensitive)",
		Default: strings.Join(def.Rovers, ","),
		Validate: func(s string) error {
			if len(splitAndTrim(s)) == 0 {
				return fmt.Errorf("at least one rover is required")
			}
			return nil
		},
	}
	roversStr, err := roversPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("rovers: %w", err)
	}

	// 3. Listen port.
	portPrompt := promptui.Prompt{
		Label:    "Dashboard port",
		Default:  strconv.Itoa(def.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 4. Log level.
	levelPrompt := promptui.Select{
		Label: "Log level",
		Items: []string{"info", "debug", "warn", "error"},
	}
	_, level, err := levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	cfg := def
	cfg.BackendURL = backendURL
	cfg.Rovers = splitAndTrim(roversStr)
	cfg.Port = port
	cfg.LogLevel = level

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateBackendURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n <= 0 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
