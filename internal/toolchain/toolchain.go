// Package toolchain locates Rust toolchain binaries relative to a sysroot.
package toolchain

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/AndreyAkinshin/rustcfg/internal/process"
)

// Tool is a binary shipped with a Rust toolchain.
type Tool int

const (
	Cargo Tool = iota
	Rustc
)

// Name returns the executable name without extension.
func (t Tool) Name() string {
	switch t {
	case Cargo:
		return "cargo"
	case Rustc:
		return "rustc"
	default:
		return "unknown"
	}
}

// EnvVar returns the environment variable that overrides the tool path.
func (t Tool) EnvVar() string {
	switch t {
	case Cargo:
		return "CARGO"
	case Rustc:
		return "RUSTC"
	default:
		return ""
	}
}

// Path resolves the tool without a sysroot: the override variable if set,
// then the cargo home bin directory, then the bare name for a PATH lookup.
func (t Tool) Path() string {
	if env := t.EnvVar(); env != "" {
		if p := os.Getenv(env); p != "" {
			return p
		}
	}

	if home := cargoHome(); home != "" {
		candidate := filepath.Join(home, "bin", executableName(t.Name()))
		if isFile(candidate) {
			return candidate
		}
	}

	return t.Name()
}

// Sysroot is the root directory of an installed toolchain. An empty Root
// means "whatever toolchain the environment provides".
type Sysroot struct {
	Root string
}

// NewSysroot creates a sysroot rooted at root.
func NewSysroot(root string) Sysroot {
	return Sysroot{Root: root}
}

// Tool returns a command for tool with dir as the working directory.
//
// When the sysroot ships the binary, that binary is used and
// RUSTUP_TOOLCHAIN is pinned to the sysroot so rustup proxies invoked by it
// (cargo calling rustc) resolve to the same toolchain.
func (s Sysroot) Tool(tool Tool, dir string) *process.Command {
	if s.Root != "" {
		candidate := filepath.Join(s.Root, "bin", executableName(tool.Name()))
		if isFile(candidate) {
			return process.NewCommand(candidate, dir).SetEnv("RUSTUP_TOOLCHAIN", s.Root)
		}
	}
	return process.NewCommand(tool.Path(), dir)
}

func cargoHome() string {
	if home := os.Getenv("CARGO_HOME"); home != "" {
		return home
	}
	if userHome, err := os.UserHomeDir(); err == nil {
		return filepath.Join(userHome, ".cargo")
	}
	return ""
}

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
