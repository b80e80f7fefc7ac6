// Package rustccfg fetches the built-in cfg atoms of a Rust toolchain by
// running `rustc --print cfg`, either through cargo or directly.
package rustccfg

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/AndreyAkinshin/rustcfg/internal/cfg"
	"github.com/AndreyAkinshin/rustcfg/internal/process"
	"github.com/AndreyAkinshin/rustcfg/internal/toolchain"
)

// rustcArgs are always passed. -O fixes the output to the optimized profile
// so repeated queries print the same set.
var rustcArgs = []string{"--print", "cfg", "-O"}

// Querier runs cfg queries. It holds no per-call state and is safe for
// concurrent use when its Runner is.
type Querier struct {
	runner process.Runner
	logger *slog.Logger
	getwd  func() (string, error)
}

// New creates a Querier. A nil logger discards log output.
func New(runner process.Runner, logger *slog.Logger) *Querier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Querier{
		runner: runner,
		logger: logger,
		getwd:  os.Getwd,
	}
}

// Get fetches cfg atoms using the host environment and the default logger.
// See Querier.Get.
func Get(config QueryConfig, target string, extraEnv map[string]string) []cfg.Atom {
	return New(process.OSRunner{}, slog.Default()).Get(config, target, extraEnv)
}

// Get returns the built-in cfg atoms for target, or for the host when target
// is empty. extraEnv is added to the toolchain environment.
//
// Get never fails. Invocation and parse errors are logged and yield an empty
// slice, which callers must read as "no information".
func (q *Querier) Get(config QueryConfig, target string, extraEnv map[string]string) []cfg.Atom {
	logger := q.logger.With("op", "rustc_cfg.get", "target", target)

	text, err := q.printCfg(logger, config, target, extraEnv)
	if err != nil {
		logger.Error("failed to get rustc cfgs", "error", err)
		return []cfg.Atom{}
	}

	atoms, err := cfg.ParseLines(text)
	if err != nil {
		logger.Error("failed to parse rustc cfgs", "error", err, "lines", cfg.Lines(text))
		return []cfg.Atom{}
	}

	logger.Debug("rustc cfgs found", "cfgs", atoms)
	return atoms
}

// printCfg runs the introspection command and returns its stdout. A cargo
// failure falls through to rustc with the same sysroot; a rustc failure is
// returned.
func (q *Querier) printCfg(logger *slog.Logger, config QueryConfig, target string, extraEnv map[string]string) (string, error) {
	sysroot := config.Sysroot()

	if config.Strategy() == StrategyCargo {
		cmd := sysroot.Tool(toolchain.Cargo, config.manifestDir())
		cmd.Envs(extraEnv)
		// Unlocks -Z on stable toolchains.
		cmd.SetEnv("RUSTC_BOOTSTRAP", "1")
		cmd.AddArgs("rustc", "-Z", "unstable-options").AddArgs(rustcArgs...)
		addTarget(cmd, target)

		out, err := q.runner.Output(cmd)
		if err == nil {
			return out, nil
		}
		logger.Warn(fmt.Sprintf("failed to run `%s`, falling back to invoking rustc directly", cmd), "error", err)
	}

	wd, err := q.getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	cmd := sysroot.Tool(toolchain.Rustc, wd)
	cmd.Envs(extraEnv)
	cmd.AddArgs(rustcArgs...)
	addTarget(cmd, target)

	out, err := q.runner.Output(cmd)
	if err != nil {
		return "", fmt.Errorf("unable to fetch cfgs via `%s`: %w", cmd, err)
	}
	return out, nil
}

func addTarget(cmd *process.Command, target string) {
	if target != "" {
		cmd.AddArgs("--target", target)
	}
}
