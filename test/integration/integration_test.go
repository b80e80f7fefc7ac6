// Package integration contains integration tests for rustcfg.
package integration

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string
)

// fixturesDir returns the path to the test fixtures directory.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures")
	})
	return fixturesDirPath
}

// fakeSysroot creates a sysroot whose bin/ holds shell scripts standing in
// for cargo and rustc. An empty script body makes the tool absent.
func fakeSysroot(t *testing.T, cargo, rustc string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake toolchain scripts need a POSIX shell")
	}
	root := t.TempDir()
	bin := filepath.Join(root, "bin")
	if err := os.MkdirAll(bin, 0755); err != nil {
		t.Fatal(err)
	}
	for name, body := range map[string]string{"cargo": cargo, "rustc": rustc} {
		if body == "" {
			continue
		}
		script := "#!/bin/sh\n" + body + "\n"
		if err := os.WriteFile(filepath.Join(bin, name), []byte(script), 0755); err != nil {
			t.Fatal(err)
		}
	}
	return root
}
