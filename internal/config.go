package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL       = "https://api.gitter.im/v1"
	DefaultPollInterval = 5 * time.Second
	DefaultTickInterval = time.Second
	DefaultFetchLimit   = 15

	// Bounds every API call, including posts still queued when the chat window closes
	DefaultRequestTimeout = 30 * time.Second

	tokenEnv  = "GITTER_TOKEN"
	apiURLEnv = "GITTER_API_URL"
)

// Config holds everything needed to talk to the chat service
type Config struct {
	Token        string        `yaml:"token"`
	APIURL       string        `yaml:"api_url,omitempty"`
	PollInterval time.Duration `yaml:"poll_interval,omitempty"`
	TickInterval time.Duration `yaml:"tick_interval,omitempty"`
	FetchLimit   int           `yaml:"fetch_limit,omitempty"`
	LogFile      string        `yaml:"log_file,omitempty"`

	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`

	// Path of the file the config was read from, empty if none was found
	Path string `yaml:"-"`
}

// DefaultConfigPaths returns the locations searched when no explicit path is given:
// $HOME/.gitter_gtk/config.yaml, then ./config.yaml
func DefaultConfigPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".gitter_gtk", "config.yaml"))
	}
	return append(paths, "config.yaml")
}

// LoadConfig reads configuration from a .env file, a YAML file and the environment.
// Environment variables take precedence over the file. An explicit path that
// does not exist is an error; the default locations are optional.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		LogDebug("No .env file loaded: %v", err)
	}

	cfg := &Config{}

	candidates := DefaultConfigPaths()
	if path != "" {
		candidates = []string{path}
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			if path != "" {
				return nil, &ConfigError{Path: candidate, Field: "file", Err: err}
			}
			LogDebug("Config not found at %s", candidate)
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ConfigError{Path: candidate, Field: "file", Err: fmt.Errorf("failed to parse YAML: %w", err)}
		}
		cfg.Path = candidate
		LogDebug("Loaded config from %s", candidate)
		break
	}

	if token, ok := os.LookupEnv(tokenEnv); ok && strings.TrimSpace(token) != "" {
		cfg.Token = token
	}
	if apiURL, ok := os.LookupEnv(apiURLEnv); ok && strings.TrimSpace(apiURL) != "" {
		cfg.APIURL = apiURL
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Token = strings.TrimSpace(c.Token)
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.FetchLimit <= 0 {
		c.FetchLimit = DefaultFetchLimit
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
}

// Validate checks that a token is present
func (c *Config) Validate() error {
	if c.Token == "" {
		return &ConfigError{Path: c.Path, Field: "token", Err: ErrNoToken}
	}
	return nil
}
