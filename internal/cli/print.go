package cli

import (
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/AndreyAkinshin/rustcfg/internal/cfg"
	"github.com/AndreyAkinshin/rustcfg/internal/config"
	"github.com/AndreyAkinshin/rustcfg/internal/errors"
	"github.com/AndreyAkinshin/rustcfg/internal/output"
	"github.com/AndreyAkinshin/rustcfg/internal/rustccfg"
	"github.com/AndreyAkinshin/rustcfg/internal/toolchain"
)

// minParallelQueries keeps at least one worker even if runtime.NumCPU()
// reports zero.
const minParallelQueries = 1

// cmdPrint queries the toolchain for every configured target and prints
// the atoms. An empty result is reported as a warning, not a failure.
func (a *app) cmdPrint(args []string, opts *GlobalOptions) error {
	if wantsHelp(args) {
		a.printPrintUsage()
		return nil
	}

	popts, err := parsePrintFlags(args)
	if err != nil {
		return errors.WrapConfig(err, "print")
	}

	cfgFile, _, err := a.loadConfig(opts, false)
	if err != nil {
		return err
	}
	warnings, err := a.resolveSettings(cfgFile, popts)
	for _, w := range warnings {
		a.out.Warning("%s", w)
	}
	if err != nil {
		return err
	}

	extraEnv, err := cfgFile.ExtraEnv()
	if err != nil {
		return errors.WrapConfig(err, "failed to load extra environment")
	}

	logger := a.logger(opts)
	query, err := a.queryConfig(cfgFile, logger)
	if err != nil {
		return err
	}

	targets := cfgFile.Targets
	if len(targets) == 0 {
		targets = []string{""}
	}

	results := queryAll(rustccfg.New(a.runner, logger), query, targets, extraEnv)
	for i, atoms := range results {
		if len(atoms) == 0 {
			label := targets[i]
			if label == "" {
				label = output.HostTarget
			}
			a.out.Warning("no cfg information for %s (see log output above)", label)
		}
	}

	if err := a.out.Atoms(targets, results, popts.Format); err != nil {
		return errors.Wrap(err, "failed to write output")
	}
	return nil
}

// queryConfig builds the query from resolved settings. A configured sysroot
// must exist. Without one it asks rustc; when that fails the tools are taken
// from the environment.
func (a *app) queryConfig(c *config.Config, logger *slog.Logger) (rustccfg.QueryConfig, error) {
	if c.Sysroot != "" {
		if info, err := os.Stat(c.Sysroot); err != nil || !info.IsDir() {
			return rustccfg.QueryConfig{}, errors.Environmentf("sysroot %s is not a directory", c.Sysroot)
		}
	}

	sysroot := toolchain.NewSysroot(c.Sysroot)
	if c.Sysroot == "" {
		discovered, err := toolchain.Discover(a.runner, c.Dir)
		if err != nil {
			logger.Debug("using tools from the environment", "error", err)
		} else {
			sysroot = discovered
		}
	}

	strategy, err := rustccfg.ParseStrategy(c.Strategy)
	if err != nil {
		return rustccfg.QueryConfig{}, errors.WrapConfig(err, "invalid settings")
	}
	if strategy == rustccfg.StrategyCargo {
		return rustccfg.CargoQuery(sysroot, c.ManifestPath), nil
	}
	return rustccfg.RustcQuery(sysroot), nil
}

// queryAll runs one query per target concurrently and returns the results
// in target order.
func queryAll(q *rustccfg.Querier, query rustccfg.QueryConfig, targets []string, extraEnv map[string]string) [][]cfg.Atom {
	results := make([][]cfg.Atom, len(targets))

	var g errgroup.Group
	g.SetLimit(max(runtime.NumCPU(), minParallelQueries))
	for i, target := range targets {
		g.Go(func() error {
			results[i] = q.Get(query, target, extraEnv)
			return nil
		})
	}
	// Get never fails, so Wait only joins the workers.
	_ = g.Wait()

	return results
}

func (a *app) printPrintUsage() {
	w := a.out

	w.HelpTitle("rustcfg print - print built-in cfg atoms")

	w.HelpSection("Usage:")
	w.HelpUsage("rustcfg print [options]")

	w.HelpSection("Description:")
	w.Println("  Runs `cargo rustc -Z unstable-options --print cfg -O` next to Cargo.toml,")
	w.Println("  falling back to `rustc --print cfg -O` when cargo fails. Failures never")
	w.Println("  abort the command; an empty result means no information is available.")

	w.HelpSection("Options:")
	w.HelpFlag("--target <triple>", "Target to query, repeatable (default: host)", helpFlagWidth)
	w.HelpFlag("--manifest-path <path>", "Cargo.toml to run cargo next to", helpFlagWidth)
	w.HelpFlag("--sysroot <dir>", "Toolchain root (default: rustc --print sysroot)", helpFlagWidth)
	w.HelpFlag("--strategy <cargo|rustc>", "Preferred invocation", helpFlagWidth)
	w.HelpFlag("--rustc", "Same as --strategy rustc", helpFlagWidth)
	w.HelpFlag("--env <KEY=VALUE>", "Extra environment, repeatable", helpFlagWidth)
	w.HelpFlag("--env-file <file>", "dotenv file with extra environment", helpFlagWidth)
	w.HelpFlag("--format <text|json|table>", "Output format (default: text)", helpFlagWidth)

	printGlobalFlags(w)

	w.HelpSection("Environment:")
	w.HelpEnvVar("CARGO, RUSTC", "Tool paths when the sysroot does not ship them", 14)
	w.HelpEnvVar("CARGO_HOME", "Fallback tool directory (bin/)", 14)
	w.Println("")
}
