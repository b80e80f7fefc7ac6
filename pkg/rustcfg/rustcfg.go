// Package rustcfg provides the public API for reading the built-in cfg
// atoms of a Rust toolchain.
//
//	atoms := rustcfg.Get(rustcfg.CargoQuery("", "Cargo.toml"), "wasm32-unknown-unknown", nil)
//	for _, a := range atoms {
//		fmt.Println(a)
//	}
//
// Get never fails: problems are logged through log/slog and an empty
// result is returned.
package rustcfg

import (
	"log/slog"

	"github.com/AndreyAkinshin/rustcfg/internal/cfg"
	"github.com/AndreyAkinshin/rustcfg/internal/process"
	"github.com/AndreyAkinshin/rustcfg/internal/rustccfg"
	"github.com/AndreyAkinshin/rustcfg/internal/toolchain"
)

// Atom is a single cfg entry: a flag such as `unix` or a key-value pair
// such as `target_os="linux"`.
type Atom = cfg.Atom

// QueryConfig selects how the toolchain is invoked.
type QueryConfig = rustccfg.QueryConfig

// Flag returns a flag atom.
func Flag(name string) Atom { return cfg.Flag(name) }

// KeyValue returns a key-value atom.
func KeyValue(key, value string) Atom { return cfg.KeyValue(key, value) }

// ParseLine parses one line of `--print cfg` output.
func ParseLine(line string) (Atom, error) { return cfg.Parse(line) }

// CargoQuery queries through `cargo rustc` next to manifestPath, falling
// back to rustc. An empty sysroot uses the tools found in the environment.
func CargoQuery(sysroot, manifestPath string) QueryConfig {
	return rustccfg.CargoQuery(toolchain.NewSysroot(sysroot), manifestPath)
}

// RustcQuery queries rustc directly.
func RustcQuery(sysroot string) QueryConfig {
	return rustccfg.RustcQuery(toolchain.NewSysroot(sysroot))
}

// Get returns the cfg atoms for target (empty for the host), logging to
// slog.Default().
func Get(config QueryConfig, target string, extraEnv map[string]string) []Atom {
	return rustccfg.Get(config, target, extraEnv)
}

// GetWithLogger is Get with an explicit logger. A nil logger discards.
func GetWithLogger(logger *slog.Logger, config QueryConfig, target string, extraEnv map[string]string) []Atom {
	return rustccfg.New(process.OSRunner{}, logger).Get(config, target, extraEnv)
}
