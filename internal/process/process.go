// Package process runs toolchain commands and captures their standard output.
package process

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Command describes a process to spawn. Env entries are added on top of the
// inherited environment, overriding inherited values with the same name.
type Command struct {
	Program string
	Args    []string
	Dir     string
	Env     map[string]string
}

// NewCommand creates a command for program running in dir.
func NewCommand(program, dir string) *Command {
	return &Command{
		Program: program,
		Dir:     dir,
		Env:     make(map[string]string),
	}
}

// Arg appends a single argument.
func (c *Command) Arg(arg string) *Command {
	c.Args = append(c.Args, arg)
	return c
}

// AddArgs appends arguments in order.
func (c *Command) AddArgs(args ...string) *Command {
	c.Args = append(c.Args, args...)
	return c
}

// SetEnv sets one environment variable, replacing any previous value.
func (c *Command) SetEnv(key, value string) *Command {
	if c.Env == nil {
		c.Env = make(map[string]string)
	}
	c.Env[key] = value
	return c
}

// Envs merges env into the command environment. Values in env win.
func (c *Command) Envs(env map[string]string) *Command {
	for k, v := range env {
		c.SetEnv(k, v)
	}
	return c
}

// Environ returns the Env entries as sorted KEY=VALUE pairs.
func (c *Command) Environ() []string {
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+c.Env[k])
	}
	return pairs
}

// String renders the command as a shell line, e.g.
// `cd /work && RUSTC_BOOTSTRAP=1 cargo rustc -Z unstable-options`.
func (c *Command) String() string {
	var b strings.Builder
	if c.Dir != "" {
		b.WriteString("cd ")
		b.WriteString(shellquote.Join(c.Dir))
		b.WriteString(" && ")
	}
	for _, pair := range c.Environ() {
		b.WriteString(shellquote.Join(pair))
		b.WriteString(" ")
	}
	b.WriteString(shellquote.Join(append([]string{c.Program}, c.Args...)...))
	return b.String()
}

// Runner executes a command and returns its standard output as text.
type Runner interface {
	Output(cmd *Command) (string, error)
}

// ExecError describes a failed invocation.
type ExecError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ExecError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg != "" {
		return fmt.Sprintf("command `%s` failed: %v (stderr: %s)", e.Command, e.Err, msg)
	}
	return fmt.Sprintf("command `%s` failed: %v", e.Command, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// OSRunner spawns commands on the host and waits for them without a timeout.
type OSRunner struct{}

// Output runs cmd, capturing stdout. A non-zero exit or stdout that is not
// valid UTF-8 is reported as an *ExecError.
func (OSRunner) Output(c *Command) (string, error) {
	cmd := exec.Command(c.Program, c.Args...)
	cmd.Dir = c.Dir
	// Later duplicates win in os/exec, so appended entries override inherited ones.
	cmd.Env = append(os.Environ(), c.Environ()...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &ExecError{Command: c.String(), Stderr: stderr.String(), Err: err}
	}

	text, err := decodeUTF8(stdout.Bytes())
	if err != nil {
		return "", &ExecError{Command: c.String(), Err: err}
	}
	return text, nil
}

// decodeUTF8 validates that out is UTF-8 encoded.
func decodeUTF8(out []byte) (string, error) {
	valid, _, err := transform.Bytes(encoding.UTF8Validator, out)
	if err != nil {
		return "", fmt.Errorf("stdout is not valid UTF-8: %w", err)
	}
	return string(valid), nil
}
