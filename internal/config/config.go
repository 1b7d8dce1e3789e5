// Package config loads server configuration for the QC HTTP service.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config carries the settings of the HTTP service. The QC core itself is
// configuration-free; profiles come from the embedded catalog.
type Config struct {
	Bind           string `toml:"bind"`
	DefaultProfile string `toml:"default_profile"`
	MaxBodyBytes   int64  `toml:"max_body_bytes"`
	Verbose        bool   `toml:"verbose"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Bind:           ":8080",
		DefaultProfile: "Netflix-SV",
		MaxBodyBytes:   10 << 20,
	}
}

// Load reads a TOML config file over the defaults. An empty path yields the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Bind == "" {
		return cfg, fmt.Errorf("config: bind must not be empty")
	}
	if cfg.MaxBodyBytes <= 0 {
		return cfg, fmt.Errorf("config: max_body_bytes must be positive")
	}
	return cfg, nil
}

// Sample returns the annotated sample configuration shipped in the binary.
func Sample() string {
	return sampleConfig
}
