package config

// DefaultRovers is the rover catalog shown when none is configured.
var DefaultRovers = []string{"Spirit", "Opportunity", "Curiosity"}

const (
	DefaultTitle  = "Simple Mars Rover Dashboard"
	DefaultFooter = "__Fact:__ _Mars is the only planet solely inhabited by robots!!_"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:                3000,
		BackendURL:          "http://localhost:8081",
		Rovers:              append([]string(nil), DefaultRovers...),
		FetchTimeoutSeconds: 30,
		FetchRetryMax:       3,
		DataDir:             ".marsdash",
		AllowAllOrigins:     false,
		LogLevel:            "info",
		Title:               DefaultTitle,
		FooterMarkdown:      DefaultFooter,
	}
}
