package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/rustcfg/internal/config"
	"github.com/AndreyAkinshin/rustcfg/internal/errors"
	"github.com/AndreyAkinshin/rustcfg/internal/output"
	"github.com/AndreyAkinshin/rustcfg/internal/toolchain"
)

// PrintOptions holds parsed flags of the print command. Empty fields defer
// to the configuration file.
type PrintOptions struct {
	Targets      []string
	ManifestPath string
	Sysroot      string
	Strategy     string
	Env          map[string]string
	EnvFile      string
	Format       output.Format
}

// parsePrintFlags parses print flags. Every value flag accepts both
// `--flag value` and `--flag=value`.
func parsePrintFlags(args []string) (*PrintOptions, error) {
	opts := &PrintOptions{Format: output.FormatText}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--rustc" {
			opts.Strategy = config.StrategyRustc
			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")
		switch name {
		case "--target", "--manifest-path", "--sysroot", "--strategy", "--env", "--env-file", "--format":
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("unknown flag: %s", arg)
			}
			return nil, fmt.Errorf("unexpected argument: %s", arg)
		}
		if !hasValue {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", name)
			}
			i++
			value = args[i]
		}

		switch name {
		case "--target":
			opts.Targets = append(opts.Targets, value)
		case "--manifest-path":
			opts.ManifestPath = value
		case "--sysroot":
			opts.Sysroot = value
		case "--strategy":
			if value != config.StrategyCargo && value != config.StrategyRustc {
				return nil, fmt.Errorf("invalid --strategy value %q (expected cargo or rustc)", value)
			}
			opts.Strategy = value
		case "--env":
			key, val, ok := strings.Cut(value, "=")
			if !ok || key == "" {
				return nil, fmt.Errorf("invalid --env value %q (expected KEY=VALUE)", value)
			}
			if opts.Env == nil {
				opts.Env = make(map[string]string)
			}
			opts.Env[key] = val
		case "--env-file":
			opts.EnvFile = value
		case "--format":
			format, err := output.ParseFormat(value)
			if err != nil {
				return nil, err
			}
			opts.Format = format
		}
	}

	return opts, nil
}

// loadConfig loads the configuration named by --config, or the nearest
// rustcfg.yaml above the working directory. Without a file it returns an
// empty configuration rooted at the working directory; required makes a
// missing file an error instead.
func (a *app) loadConfig(opts *GlobalOptions, required bool) (*config.Config, string, error) {
	wd, err := a.getwd()
	if err != nil {
		return nil, "", errors.WrapEnvironment(err, "failed to get current directory")
	}

	path := opts.ConfigPath
	if path == "" {
		found, ok := config.Find(wd)
		if !ok {
			if required {
				return nil, "", errors.Configf("no %s found in %s or its parents", config.FileNames[0], wd)
			}
			return &config.Config{Dir: wd}, "", nil
		}
		path = found
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(wd, path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, errors.WrapConfig(err, fmt.Sprintf("invalid configuration %s", path))
	}
	return cfg, path, nil
}

// resolveSettings overlays print flags on the configuration, detects the
// cargo manifest when none is given, and validates the result.
func (a *app) resolveSettings(cfg *config.Config, popts *PrintOptions) ([]string, error) {
	wd, err := a.getwd()
	if err != nil {
		return nil, errors.WrapEnvironment(err, "failed to get current directory")
	}
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(wd, p)
	}

	// Config paths are relative to the file, flag paths to the working directory.
	config.ResolvePaths(cfg)

	if popts != nil {
		if len(popts.Targets) > 0 {
			cfg.Targets = popts.Targets
		}
		if popts.ManifestPath != "" {
			cfg.ManifestPath = abs(popts.ManifestPath)
		}
		if popts.Sysroot != "" {
			cfg.Sysroot = abs(popts.Sysroot)
		}
		if popts.Strategy != "" {
			cfg.Strategy = popts.Strategy
		}
		if popts.EnvFile != "" {
			cfg.EnvFile = abs(popts.EnvFile)
		}
		for k, v := range popts.Env {
			if cfg.Env == nil {
				cfg.Env = make(map[string]string)
			}
			cfg.Env[k] = v
		}
	}

	if cfg.ManifestPath == "" && cfg.Strategy != config.StrategyRustc {
		if manifest, ok := toolchain.FindManifest(wd); ok {
			cfg.ManifestPath = manifest
		}
	}

	config.ApplyDefaults(cfg)

	warnings, err := config.Validate(cfg)
	if err != nil {
		return warnings, errors.WrapConfig(err, "invalid settings")
	}
	return warnings, nil
}
