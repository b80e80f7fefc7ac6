package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration (after ApplyDefaults) for errors and
// returns warnings for non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	switch cfg.Strategy {
	case StrategyCargo:
		if cfg.ManifestPath == "" {
			return nil, &ValidationError{Field: "manifest_path", Message: "is required when strategy is cargo"}
		}
	case StrategyRustc:
		if cfg.ManifestPath != "" {
			warnings = append(warnings, "manifest_path is ignored when strategy is rustc")
		}
	default:
		return nil, &ValidationError{Field: "strategy", Message: `must be "cargo" or "rustc"`}
	}

	if cfg.ManifestPath != "" && filepath.Base(cfg.ManifestPath) != "Cargo.toml" {
		warnings = append(warnings, fmt.Sprintf("manifest_path %q does not name a Cargo.toml", cfg.ManifestPath))
	}

	seen := make(map[string]bool, len(cfg.Targets))
	for i, target := range cfg.Targets {
		if strings.TrimSpace(target) == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("targets[%d]", i), Message: "must not be empty"}
		}
		if seen[target] {
			return nil, &ValidationError{Field: fmt.Sprintf("targets[%d]", i), Message: fmt.Sprintf("duplicate target %q", target)}
		}
		seen[target] = true
	}

	for key := range cfg.Env {
		if key == "" || strings.ContainsAny(key, "= \t") {
			return nil, &ValidationError{Field: fmt.Sprintf("env.%s", key), Message: "is not a valid variable name"}
		}
	}
	if _, ok := cfg.Env["RUSTC_BOOTSTRAP"]; ok && cfg.Strategy == StrategyCargo {
		warnings = append(warnings, "env.RUSTC_BOOTSTRAP is overridden for cargo queries")
	}

	return warnings, nil
}
