// Package config handles TOML-based configuration loading and validation.
// Every external URL template the service speaks (listing site, stream
// host, conversion proxy) lives here, so an upstream format revision is
// a config change, not a code change.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	ListenAddr     string   `toml:"listen_addr"`
	SiteBase       string   `toml:"site_base"`
	StreamBase     string   `toml:"stream_base"`
	ConvertBase    string   `toml:"convert_base"`
	DefaultLang    string   `toml:"default_lang"`
	Languages      []string `toml:"languages"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	LogLevel       string   `toml:"log_level"`
	LogJSON        bool     `toml:"log_json"`
}

// Default returns the default configuration, mirroring the upstream
// hosts the service is built against.
func Default() *Config {
	return &Config{
		ListenAddr:     ":3000",
		SiteBase:       "https://anime-world.in",
		StreamBase:     "https://beta.awstream.net",
		ConvertBase:    "https://m3u8-ryan.vercel.app/api/convert",
		DefaultLang:    "hindi",
		Languages:      []string{"japanese", "english", "hindi"},
		TimeoutSeconds: 10,
		LogLevel:       "info",
		LogJSON:        false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "aniworld"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "aniworld"), nil
}

// ConfigPath returns the default path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file at path and merges it over defaults.
// An empty path means the default XDG location; a missing file there
// is not an error and yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	for _, base := range []struct {
		name, value string
	}{
		{"site_base", c.SiteBase},
		{"stream_base", c.StreamBase},
		{"convert_base", c.ConvertBase},
	} {
		if !strings.HasPrefix(base.value, "https://") {
			return fmt.Errorf("%s must be an https URL, got %q", base.name, base.value)
		}
	}

	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr cannot be empty")
	}
	if c.DefaultLang == "" {
		return fmt.Errorf("default_lang cannot be empty")
	}
	if len(c.Languages) == 0 {
		return fmt.Errorf("languages cannot be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}

	return nil
}

// StreamHostLabel derives the human-readable host label used in watch
// candidate quality strings, e.g. "beta.awstream" for
// https://beta.awstream.net.
func (c *Config) StreamHostLabel() string {
	host := strings.TrimPrefix(c.StreamBase, "https://")
	if i := strings.IndexAny(host, "/:"); i != -1 {
		host = host[:i]
	}
	if i := strings.LastIndex(host, "."); i > 0 {
		host = host[:i]
	}
	return host
}
