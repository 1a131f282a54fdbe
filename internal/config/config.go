// Package config loads protscope settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/protscope/core/internal/models"
)

// Config holds protscope configuration.
type Config struct {
	Endpoint EndpointConfig `toml:"endpoint"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	View     ViewConfig     `toml:"view"`
	Organs   OrgansConfig   `toml:"organs"`
}

// EndpointConfig selects the SPARQL endpoint.
type EndpointConfig struct {
	URL       string   `toml:"url"`
	UserAgent string   `toml:"user_agent"`
	Timeout   Duration `toml:"timeout"` // zero disables the timeout
}

// ServerConfig controls `protscope serve`.
type ServerConfig struct {
	Addr              string `toml:"addr"`
	CORSAllowedOrigin string `toml:"cors_allowed_origin"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

type ViewConfig struct {
	Default models.View `toml:"default"`
}

type OrgansConfig struct {
	WarmConcurrency int `toml:"warm_concurrency"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			URL:       "https://query.wikidata.org/sparql",
			UserAgent: "protscope/1.0 (https://github.com/protscope/core)",
		},
		Server: ServerConfig{Addr: ":8080", CORSAllowedOrigin: "*"},
		Log:    LogConfig{Level: "info", Format: "console"},
		View:   ViewConfig{Default: models.ViewTable},
		Organs: OrgansConfig{WarmConcurrency: 2},
	}
}

// ConfigDir returns the protscope config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "protscope")
}

func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the default config file. A missing file yields the defaults.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if _, err := models.ParseView(string(cfg.View.Default)); err != nil {
		return nil, fmt.Errorf("view.default: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PROTSCOPE_ENDPOINT"); v != "" {
		c.Endpoint.URL = v
	}
	if v := os.Getenv("PROTSCOPE_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGIN"); v != "" {
		c.Server.CORSAllowedOrigin = v
	}
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
