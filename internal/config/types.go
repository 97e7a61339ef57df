package config

// Config is the top-level marsdash configuration, corresponding to .marsdash.yml.
type Config struct {
	Port                int      `yaml:"port" koanf:"port"`
	BackendURL          string   `yaml:"backend_url" koanf:"backend_url"`
	Rovers              []string `yaml:"rovers" koanf:"rovers"`
	FetchTimeoutSeconds int      `yaml:"fetch_timeout_seconds" koanf:"fetch_timeout_seconds"`
	FetchRetryMax       int      `yaml:"fetch_retry_max" koanf:"fetch_retry_max"`
	DataDir             string   `yaml:"data_dir" koanf:"data_dir"`
	AllowAllOrigins     bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	LogLevel            string   `yaml:"log_level" koanf:"log_level"`
	Title               string   `yaml:"title" koanf:"title"`
	FooterMarkdown      string   `yaml:"footer_markdown" koanf:"footer_markdown"`
}
