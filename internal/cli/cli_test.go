package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/rustcfg/internal/output"
	"github.com/AndreyAkinshin/rustcfg/internal/process"
	"github.com/AndreyAkinshin/rustcfg/internal/testing/mocks"
	"github.com/AndreyAkinshin/rustcfg/internal/toolchain"
)

type testApp struct {
	*app
	wd      string
	sysroot string
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	logs    *bytes.Buffer
}

// newTestApp creates an app rooted at a temporary working directory with a
// sysroot that ships cargo and rustc.
func newTestApp(t *testing.T, runner process.Runner) *testApp {
	t.Helper()
	wd := t.TempDir()
	sysroot := t.TempDir()
	binDir := filepath.Join(sysroot, "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"cargo", "rustc", "cargo.exe", "rustc.exe"} {
		if err := os.WriteFile(filepath.Join(binDir, name), nil, 0755); err != nil {
			t.Fatal(err)
		}
	}

	stdout, stderr, logs := &bytes.Buffer{}, &bytes.Buffer{}, &bytes.Buffer{}
	return &testApp{
		app: &app{
			out:    output.NewWithWriters(stdout, stderr, false),
			logOut: logs,
			runner: runner,
			getwd:  func() (string, error) { return wd, nil },
		},
		wd:      wd,
		sysroot: sysroot,
		stdout:  stdout,
		stderr:  stderr,
		logs:    logs,
	}
}

func (ta *testApp) tool(tool toolchain.Tool) string {
	return toolchain.NewSysroot(ta.sysroot).Tool(tool, "").Program
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParseGlobalFlags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		args          []string
		wantQuiet     bool
		wantVerbose   bool
		wantConfig    string
		wantRemaining []string
		wantErr       bool
	}{
		{
			name:          "no flags",
			args:          []string{"print"},
			wantRemaining: []string{"print"},
		},
		{
			name:          "quiet short",
			args:          []string{"-q", "print"},
			wantQuiet:     true,
			wantRemaining: []string{"print"},
		},
		{
			name:          "verbose after command",
			args:          []string{"print", "--verbose"},
			wantVerbose:   true,
			wantRemaining: []string{"print"},
		},
		{
			name:          "--config with space",
			args:          []string{"--config", "ci.yaml", "print"},
			wantConfig:    "ci.yaml",
			wantRemaining: []string{"print"},
		},
		{
			name:          "--config=value",
			args:          []string{"print", "--config=ci.yaml", "--target", "x"},
			wantConfig:    "ci.yaml",
			wantRemaining: []string{"print", "--target", "x"},
		},
		{
			name:    "--config without value",
			args:    []string{"print", "--config"},
			wantErr: true,
		},
		{
			name:    "quiet and verbose",
			args:    []string{"-q", "-v", "print"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts, remaining, err := parseGlobalFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseGlobalFlags() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGlobalFlags() error = %v", err)
			}
			if opts.Quiet != tt.wantQuiet {
				t.Errorf("Quiet = %v, want %v", opts.Quiet, tt.wantQuiet)
			}
			if opts.Verbose != tt.wantVerbose {
				t.Errorf("Verbose = %v, want %v", opts.Verbose, tt.wantVerbose)
			}
			if opts.ConfigPath != tt.wantConfig {
				t.Errorf("ConfigPath = %q, want %q", opts.ConfigPath, tt.wantConfig)
			}
			if !slices.Equal(remaining, tt.wantRemaining) {
				t.Errorf("remaining = %v, want %v", remaining, tt.wantRemaining)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	t.Parallel()
	for _, args := range [][]string{nil, {"help"}, {"--help"}, {"-q"}} {
		ta := newTestApp(t, mocks.NewRunner())
		if code := ta.run(args); code != 0 {
			t.Errorf("run(%v) = %d, want 0", args, code)
		}
		if !strings.Contains(ta.stdout.String(), "rustcfg print") {
			t.Errorf("run(%v) did not print usage:\n%s", args, ta.stdout.String())
		}
	}
}

func TestRun_Version(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, mocks.NewRunner())
	if code := ta.run([]string{"version"}); code != 0 {
		t.Fatalf("run(version) = %d, want 0", code)
	}
	if got := ta.stdout.String(); got != "rustcfg "+Version+"\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, mocks.NewRunner())
	if code := ta.run([]string{"build"}); code != 2 {
		t.Errorf("run(build) = %d, want 2", code)
	}
	if !strings.Contains(ta.stderr.String(), `unknown command "build"`) {
		t.Errorf("stderr = %q", ta.stderr.String())
	}
}

func TestRun_GlobalFlagError(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, mocks.NewRunner())
	if code := ta.run([]string{"-q", "-v", "print"}); code != 2 {
		t.Errorf("run() = %d, want 2", code)
	}
}

func TestPrint_RustcText(t *testing.T) {
	t.Parallel()
	runner := mocks.NewRunner()
	ta := newTestApp(t, runner)
	runner.WithResponse(ta.tool(toolchain.Rustc), "unix\ntarget_os=\"linux\"\n", nil)

	code := ta.run([]string{"print", "--rustc", "--sysroot", ta.sysroot})

	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, ta.stderr.String())
	}
	if got, want := ta.stdout.String(), "unix\ntarget_os=\"linux\"\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	if runner.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", runner.CallCount())
	}
}

func TestPrint_CargoDetectedFromWorkingDirectory(t *testing.T) {
	t.Parallel()
	runner := mocks.NewRunner()
	ta := newTestApp(t, runner)
	writeFile(t, filepath.Join(ta.wd, "Cargo.toml"), "[package]\nname = \"demo\"\n")
	runner.WithResponse(ta.tool(toolchain.Cargo), "unix\n", nil)

	code := ta.run([]string{"print", "--sysroot", ta.sysroot})

	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, ta.stderr.String())
	}
	calls := runner.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if calls[0].Dir != ta.wd {
		t.Errorf("Dir = %q, want %q", calls[0].Dir, ta.wd)
	}
	if calls[0].Env["RUSTC_BOOTSTRAP"] != "1" {
		t.Errorf("RUSTC_BOOTSTRAP = %q, want 1", calls[0].Env["RUSTC_BOOTSTRAP"])
	}
	if ta.stdout.String() != "unix\n" {
		t.Errorf("stdout = %q", ta.stdout.String())
	}
}

func TestPrint_FailureWarnsAndSucceeds(t *testing.T) {
	t.Parallel()
	runner := mocks.NewRunner()
	ta := newTestApp(t, runner)
	runner.WithResponse(ta.tool(toolchain.Rustc), "", errors.New("exit status 1"))

	code := ta.run([]string{"print", "--rustc", "--sysroot", ta.sysroot})

	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if ta.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", ta.stdout.String())
	}
	if !strings.Contains(ta.stderr.String(), "no cfg information for host") {
		t.Errorf("stderr = %q", ta.stderr.String())
	}
	if !strings.Contains(ta.logs.String(), "failed to get rustc cfgs") {
		t.Errorf("logs = %q", ta.logs.String())
	}
}

func TestPrint_MultipleTargetsJSON(t *testing.T) {
	t.Parallel()
	runner := mocks.NewRunner()
	runner.OutputFunc = func(cmd *process.Command) (string, error) {
		target := cmd.Args[len(cmd.Args)-1]
		return "target_arch=\"" + strings.Split(target, "-")[0] + "\"\n", nil
	}
	ta := newTestApp(t, runner)

	code := ta.run([]string{
		"print", "--rustc", "--sysroot", ta.sysroot,
		"--target", "x86_64-unknown-linux-gnu", "--target=aarch64-apple-darwin",
		"--format", "json",
	})
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, ta.stderr.String())
	}

	var got []output.TargetAtoms
	if err := json.Unmarshal(ta.stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, ta.stdout.String())
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Target != "x86_64-unknown-linux-gnu" || *got[0].Cfgs[0].Value != "x86_64" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Target != "aarch64-apple-darwin" || *got[1].Cfgs[0].Value != "aarch64" {
		t.Errorf("got[1] = %+v", got[1])
	}
	if runner.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", runner.CallCount())
	}
}

func TestPrint_UsesConfigFile(t *testing.T) {
	t.Parallel()
	runner := mocks.NewRunner()
	ta := newTestApp(t, runner)
	writeFile(t, filepath.Join(ta.wd, ".env"), "FROM_FILE=1\nSHARED=file\n")
	writeFile(t, filepath.Join(ta.wd, "rustcfg.yaml"), "sysroot: "+ta.sysroot+"\n"+
		"strategy: rustc\n"+
		"targets: [wasm32-unknown-unknown]\n"+
		"env_file: .env\n"+
		"env:\n  SHARED: config\n")
	runner.WithResponse(ta.tool(toolchain.Rustc), "target_family=\"wasm\"\n", nil)

	if code := ta.run([]string{"print", "--env", "FROM_FLAG=2"}); code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, ta.stderr.String())
	}

	calls := runner.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	wantArgs := []string{"--print", "cfg", "-O", "--target", "wasm32-unknown-unknown"}
	if !slices.Equal(calls[0].Args, wantArgs) {
		t.Errorf("Args = %v, want %v", calls[0].Args, wantArgs)
	}
	for k, want := range map[string]string{"FROM_FILE": "1", "SHARED": "config", "FROM_FLAG": "2"} {
		if got := calls[0].Env[k]; got != want {
			t.Errorf("Env[%s] = %q, want %q", k, got, want)
		}
	}
}

func TestPrint_FlagErrors(t *testing.T) {
	t.Parallel()
	for _, args := range [][]string{
		{"print", "--bogus"},
		{"print", "--format", "xml"},
		{"print", "--strategy", "cargo", "--sysroot", "/nonexistent"},
	} {
		ta := newTestApp(t, mocks.NewRunner())
		if code := ta.run(args); code != 2 {
			t.Errorf("run(%v) = %d, want 2; stderr:\n%s", args, code, ta.stderr.String())
		}
	}
}

func TestCmdConfig_NoSubcommand_ReturnsError(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, mocks.NewRunner())
	if err := ta.cmdConfig(nil, &GlobalOptions{}); err == nil {
		t.Error("cmdConfig() expected error, got nil")
	}
}

func TestCmdConfig_UnknownSubcommand_ReturnsError(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, mocks.NewRunner())
	if err := ta.cmdConfig([]string{"edit"}, &GlobalOptions{}); err == nil {
		t.Error("cmdConfig() expected error, got nil")
	}
}

func TestCmdConfigValidate_Valid(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, mocks.NewRunner())
	writeFile(t, filepath.Join(ta.wd, "rustcfg.yaml"), "strategy: rustc\nmanifest_path: Cargo.toml\n")

	if err := ta.cmdConfig([]string{"validate"}, &GlobalOptions{}); err != nil {
		t.Fatalf("cmdConfig(validate) error = %v", err)
	}
	if !strings.Contains(ta.stdout.String(), "Configuration is valid.") {
		t.Errorf("stdout = %q", ta.stdout.String())
	}
	if !strings.Contains(ta.stdout.String(), "Warnings: 1") {
		t.Errorf("stdout = %q", ta.stdout.String())
	}
	if !strings.Contains(ta.stderr.String(), "manifest_path is ignored") {
		t.Errorf("stderr = %q", ta.stderr.String())
	}
}

func TestCmdConfigValidate_Invalid(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, mocks.NewRunner())
	writeFile(t, filepath.Join(ta.wd, "rustcfg.yaml"), "strategy: gcc\n")

	if code := ta.run([]string{"config", "validate"}); code != 2 {
		t.Errorf("run(config validate) = %d, want 2", code)
	}
}

func TestCmdConfigValidate_MissingFile(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, mocks.NewRunner())
	if err := ta.cmdConfig([]string{"validate"}, &GlobalOptions{ConfigPath: "missing.yaml"}); err == nil {
		t.Error("cmdConfig(validate) expected error, got nil")
	}
}

func TestCmdConfigShow(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, mocks.NewRunner())

	err := ta.cmdConfig([]string{"show", "--rustc", "--sysroot", ta.sysroot, "--env", "B=2", "--env", "A=1"}, &GlobalOptions{})
	if err != nil {
		t.Fatalf("cmdConfig(show) error = %v", err)
	}
	got := ta.stdout.String()
	for _, want := range []string{
		"Config File: (none)",
		"Strategy: rustc",
		"Sysroot: " + ta.sysroot,
		"Targets: (host)",
		"Extra Env: A, B",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if ta.runner.(*mocks.Runner).CallCount() != 0 {
		t.Error("config show must not run the toolchain")
	}
}

func TestPrint_MissingSysrootIsEnvironmentError(t *testing.T) {
	t.Parallel()
	runner := mocks.NewRunner()
	ta := newTestApp(t, runner)

	code := ta.run([]string{"print", "--rustc", "--sysroot", filepath.Join(ta.wd, "missing")})

	if code != 3 {
		t.Errorf("run() = %d, want 3; stderr:\n%s", code, ta.stderr.String())
	}
	if runner.CallCount() != 0 {
		t.Errorf("calls = %d, want 0", runner.CallCount())
	}
}

func TestRun_GetwdFailureIsEnvironmentError(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, mocks.NewRunner())
	ta.getwd = func() (string, error) { return "", errors.New("getwd: no such file or directory") }

	if code := ta.run([]string{"print"}); code != 3 {
		t.Errorf("run() = %d, want 3", code)
	}
}
