// Package config loads the server configuration from an optional TOML file.
// Any key missing from the file keeps its compiled-in default, and a missing
// file yields the defaults unchanged.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultPath is the config file looked up when --config is not given.
	DefaultPath = "lime.toml"

	DefaultHost      = "127.0.0.1"
	DefaultPort      = 3000
	DefaultPagesDir  = "./pages"
	DefaultStaticDir = "./static"
)

// Config holds the effective server settings.
type Config struct {
	// Host is the interface the listener binds to.
	Host string `toml:"host" json:"host" yaml:"host"`
	// Port is the TCP port, 1 to 65535.
	Port int `toml:"port" json:"port" yaml:"port"`
	// PagesDir is the root for HTML pages.
	PagesDir string `toml:"pages_dir" json:"pages_dir" yaml:"pages_dir"`
	// StaticDir is the root for every other asset.
	StaticDir string `toml:"static_dir" json:"static_dir" yaml:"static_dir"`
	// NotFoundPage is an optional page, relative to PagesDir, served as the
	// body of 404 responses. Empty means a plain-text body.
	NotFoundPage string `toml:"not_found_page" json:"not_found_page,omitempty" yaml:"not_found_page,omitempty"`

	fromFile bool
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Host:      DefaultHost,
		Port:      DefaultPort,
		PagesDir:  DefaultPagesDir,
		StaticDir: DefaultStaticDir,
	}
}

// IsDefault reports whether the configuration came from defaults only.
func (c *Config) IsDefault() bool {
	return !c.fromFile
}

// Addr returns host:port for the listener.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads the TOML file at path over the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.fromFile = true

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		log.Printf("Warning: unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	// Explicit empty strings count as absent.
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.PagesDir == "" {
		cfg.PagesDir = DefaultPagesDir
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = DefaultStaticDir
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the port range.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	return nil
}
