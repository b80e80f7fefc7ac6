package cli

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/rustcfg/internal/errors"
)

func (a *app) cmdConfig(args []string, opts *GlobalOptions) error {
	if len(args) == 0 {
		return errors.Config("config: subcommand required (validate, show)")
	}

	switch args[0] {
	case "validate":
		return a.cmdConfigValidate(opts)
	case "show":
		return a.cmdConfigShow(args[1:], opts)
	case "-h", "--help":
		a.printConfigUsage()
		return nil
	default:
		return errors.Configf("config: unknown subcommand %q", args[0])
	}
}

func (a *app) cmdConfigValidate(opts *GlobalOptions) error {
	cfgFile, path, err := a.loadConfig(opts, true)
	if err != nil {
		return err
	}

	warnings, err := a.resolveSettings(cfgFile, nil)
	for _, w := range warnings {
		a.out.Warning("%s", w)
	}
	if err != nil {
		return err
	}
	if _, err := cfgFile.ExtraEnv(); err != nil {
		return errors.WrapConfig(err, "invalid settings")
	}

	a.out.ValidationSuccess("Configuration is valid.")
	a.out.SummaryItem("File", path)
	a.out.SummaryItem("Strategy", cfgFile.Strategy)
	if len(warnings) > 0 {
		a.out.SummaryItem("Warnings", fmt.Sprintf("%d", len(warnings)))
	}
	return nil
}

// cmdConfigShow prints the settings a print command with the same flags
// would use.
func (a *app) cmdConfigShow(args []string, opts *GlobalOptions) error {
	popts, err := parsePrintFlags(args)
	if err != nil {
		return errors.WrapConfig(err, "config show")
	}

	cfgFile, path, err := a.loadConfig(opts, false)
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
		return errors.WrapConfig(err, "invalid settings")
	}

	if path == "" {
		path = "(none)"
	}
	targets := strings.Join(cfgFile.Targets, ", ")
	if targets == "" {
		targets = "(host)"
	}
	sysroot := cfgFile.Sysroot
	if sysroot == "" {
		sysroot = "(rustc --print sysroot)"
	}

	keys := make([]string, 0, len(extraEnv))
	for k := range extraEnv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	titleCase := cases.Title(language.English)
	rows := [][2]string{
		{"config file", path},
		{"strategy", cfgFile.Strategy},
		{"manifest path", cfgFile.ManifestPath},
		{"sysroot", sysroot},
		{"targets", targets},
		{"extra env", strings.Join(keys, ", ")},
	}
	for _, row := range rows {
		a.out.SummaryItem(titleCase.String(row[0]), row[1])
	}
	return nil
}

func (a *app) printConfigUsage() {
	w := a.out

	w.HelpTitle("rustcfg config - inspect the configuration")

	w.HelpSection("Usage:")
	w.HelpUsage("rustcfg config validate")
	w.HelpUsage("rustcfg config show [print options]")

	w.HelpSection("Configuration file (rustcfg.yaml):")
	w.Println("  sysroot: /path/to/toolchain")
	w.Println("  manifest_path: Cargo.toml")
	w.Println("  strategy: cargo")
	w.Println("  targets: [x86_64-unknown-linux-gnu]")
	w.Println("  env: {RUSTFLAGS: -Ctarget-cpu=native}")
	w.Println("  env_file: .env")
	w.Println("")
}
