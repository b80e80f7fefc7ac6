package rustccfg

import (
	"fmt"
	"path/filepath"

	"github.com/AndreyAkinshin/rustcfg/internal/toolchain"
)

// Strategy selects how the toolchain is reached.
type Strategy int

const (
	// StrategyCargo runs `cargo rustc` from the manifest directory so that
	// workspace toolchain overrides apply, falling back to StrategyRustc.
	StrategyCargo Strategy = iota
	// StrategyRustc runs rustc directly from the current directory.
	StrategyRustc
)

func (s Strategy) String() string {
	switch s {
	case StrategyCargo:
		return "cargo"
	case StrategyRustc:
		return "rustc"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a strategy name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "cargo":
		return StrategyCargo, nil
	case "rustc":
		return StrategyRustc, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (expected cargo or rustc)", name)
	}
}

// QueryConfig describes how to reach the toolchain. Create one with
// CargoQuery or RustcQuery.
type QueryConfig struct {
	strategy     Strategy
	sysroot      toolchain.Sysroot
	manifestPath string
}

// CargoQuery prefers `cargo rustc` run next to manifestPath.
func CargoQuery(sysroot toolchain.Sysroot, manifestPath string) QueryConfig {
	return QueryConfig{strategy: StrategyCargo, sysroot: sysroot, manifestPath: manifestPath}
}

// RustcQuery invokes rustc directly.
func RustcQuery(sysroot toolchain.Sysroot) QueryConfig {
	return QueryConfig{strategy: StrategyRustc, sysroot: sysroot}
}

// Strategy returns the preferred strategy.
func (c QueryConfig) Strategy() Strategy { return c.strategy }

// Sysroot returns the toolchain root.
func (c QueryConfig) Sysroot() toolchain.Sysroot { return c.sysroot }

// ManifestPath returns the Cargo.toml path, empty for rustc queries.
func (c QueryConfig) ManifestPath() string { return c.manifestPath }

func (c QueryConfig) manifestDir() string {
	return filepath.Dir(c.manifestPath)
}
