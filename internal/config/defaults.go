package config

import "path/filepath"

// Strategy names accepted in the strategy field.
const (
	StrategyCargo = "cargo"
	StrategyRustc = "rustc"
)

// ApplyDefaults resolves relative paths against cfg.Dir and picks a strategy
// when none is set: cargo when a manifest is known, rustc otherwise.
func ApplyDefaults(cfg *Config) {
	ResolvePaths(cfg)

	if cfg.Strategy == "" {
		if cfg.ManifestPath != "" {
			cfg.Strategy = StrategyCargo
		} else {
			cfg.Strategy = StrategyRustc
		}
	}
}

// ResolvePaths makes the path fields absolute relative to cfg.Dir.
func ResolvePaths(cfg *Config) {
	cfg.Sysroot = resolvePath(cfg.Dir, cfg.Sysroot)
	cfg.ManifestPath = resolvePath(cfg.Dir, cfg.ManifestPath)
	cfg.EnvFile = resolvePath(cfg.Dir, cfg.EnvFile)
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) || base == "" {
		return path
	}
	return filepath.Join(base, path)
}
