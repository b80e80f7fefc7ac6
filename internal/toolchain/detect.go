package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/rustcfg/internal/process"
)

// ManifestFile is the cargo manifest name looked up by FindManifest.
const ManifestFile = "Cargo.toml"

// FindManifest walks up from dir looking for Cargo.toml.
// Returns the manifest path and true if found, empty string and false otherwise.
func FindManifest(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		path := filepath.Join(dir, ManifestFile)
		if isFile(path) {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Discover asks rustc for its sysroot, running it in dir.
func Discover(runner process.Runner, dir string) (Sysroot, error) {
	cmd := process.NewCommand(Rustc.Path(), dir).AddArgs("--print", "sysroot")
	out, err := runner.Output(cmd)
	if err != nil {
		return Sysroot{}, fmt.Errorf("failed to discover sysroot: %w", err)
	}
	root := strings.TrimSpace(out)
	if root == "" {
		return Sysroot{}, fmt.Errorf("failed to discover sysroot: `%s` printed nothing", cmd)
	}
	if _, err := os.Stat(root); err != nil {
		return Sysroot{}, fmt.Errorf("failed to discover sysroot: %w", err)
	}
	return NewSysroot(root), nil
}
