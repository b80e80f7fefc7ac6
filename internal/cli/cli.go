// Package cli provides command-line interface functionality for rustcfg.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/AndreyAkinshin/rustcfg/internal/errors"
	"github.com/AndreyAkinshin/rustcfg/internal/output"
	"github.com/AndreyAkinshin/rustcfg/internal/process"
)

// Version is set at build time.
var Version = "dev"

// app holds the collaborators of one CLI invocation.
type app struct {
	out    *output.Writer
	logOut io.Writer
	runner process.Runner
	getwd  func() (string, error)
}

func newApp() *app {
	return &app{
		out:    output.New(),
		logOut: os.Stderr,
		runner: process.OSRunner{},
		getwd:  os.Getwd,
	}
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	return newApp().run(args)
}

func (a *app) run(args []string) int {
	if len(args) == 0 {
		a.printUsage()
		return errors.ExitSuccess
	}

	switch args[0] {
	case "-h", "--help", "help":
		a.printUsage()
		return errors.ExitSuccess
	case "--version", "version":
		a.out.Println("rustcfg %s", Version)
		return errors.ExitSuccess
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		a.out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	a.out.SetQuiet(opts.Quiet)

	if len(remaining) == 0 {
		a.printUsage()
		return errors.ExitSuccess
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	var runErr error
	switch cmd {
	case "print":
		runErr = a.cmdPrint(cmdArgs, opts)
	case "config":
		runErr = a.cmdConfig(cmdArgs, opts)
	default:
		runErr = errors.Configf("unknown command %q (run 'rustcfg help' for usage)", cmd)
	}

	if runErr != nil {
		a.out.ErrorPrefix("%v", runErr)
		return errors.GetExitCode(runErr)
	}
	return errors.ExitSuccess
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet      bool
	Verbose    bool
	ConfigPath string
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Manual parsing is used instead of the stdlib flag package because global
// flags may appear anywhere in the argument list, mixed with command flags.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "--config":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--config requires a value")
			}
			opts.ConfigPath = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
			i++
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if opts.Quiet && opts.Verbose {
		return nil, nil, fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}

	return opts, remaining, nil
}

// logger builds the slog logger handed to the query layer. Fallback
// warnings are shown by default; --verbose adds debug detail and --quiet
// keeps only errors.
func (a *app) logger(opts *GlobalOptions) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case opts.Verbose:
		level = slog.LevelDebug
	case opts.Quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(a.logOut, &slog.HandlerOptions{Level: level}))
}

// wantsHelp returns true if args contain -h or --help.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

const helpFlagWidth = 26

func (a *app) printUsage() {
	w := a.out

	w.HelpTitle("rustcfg - print the built-in cfg atoms of a Rust toolchain")

	w.HelpSection("Usage:")
	w.HelpUsage("rustcfg print [options]")
	w.HelpUsage("rustcfg config <validate|show>")

	w.HelpSection("Commands:")
	w.HelpFlag("print", "Query and print cfg atoms", helpFlagWidth)
	w.HelpFlag("config validate", "Validate the configuration file", helpFlagWidth)
	w.HelpFlag("config show", "Show resolved settings", helpFlagWidth)
	w.HelpFlag("version", "Show version information", helpFlagWidth)

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("rustcfg print", "Host cfgs, through cargo when a Cargo.toml is found")
	w.HelpExample("rustcfg print --target wasm32-unknown-unknown --format json", "")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Options:")
	w.HelpFlag("-q, --quiet", "Errors only", helpFlagWidth)
	w.HelpFlag("-v, --verbose", "Debug logging", helpFlagWidth)
	w.HelpFlag("--config <file>", "Configuration file (default: nearest rustcfg.yaml)", helpFlagWidth)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidth)
}
