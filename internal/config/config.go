package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/rustcfg/internal/schema"
)

// FileNames are the configuration file names looked up by Find, in order.
var FileNames = []string{"rustcfg.yaml", ".rustcfg.yaml"}

// Load reads, schema-validates and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	cfg.Dir = filepath.Dir(abs)
	return cfg, nil
}

// Parse validates YAML data against the config schema and decodes it.
// An empty document is a valid, empty configuration.
func Parse(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if doc == nil {
		return &Config{}, nil
	}

	if err := schema.ValidateDocument(doc); err != nil {
		return nil, err
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// LoadAndValidate reads a config file, applies defaults, validates, and returns warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, nil, err
	}

	ApplyDefaults(cfg)

	warnings, err := Validate(cfg)
	if err != nil {
		return nil, warnings, err
	}
	return cfg, warnings, nil
}

// Find walks up from dir looking for a configuration file.
// Returns the file path and true if found, empty string and false otherwise.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
