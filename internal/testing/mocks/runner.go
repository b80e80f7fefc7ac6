// Package mocks provides shared test doubles for rustcfg packages.
package mocks

import (
	"sync"

	"github.com/AndreyAkinshin/rustcfg/internal/process"
)

// Response is a canned result for one invocation.
type Response struct {
	Output string
	Err    error
}

// Runner implements process.Runner for testing.
// Use NewRunner() and the With* methods to script responses.
type Runner struct {
	// OutputFunc, when set, handles every call and takes precedence over
	// scripted responses.
	OutputFunc func(cmd *process.Command) (string, error)

	mu        sync.Mutex
	responses map[string][]Response
	calls     []process.Command
}

// NewRunner creates a runner with no scripted responses. Unscripted calls
// fail with ErrUnscripted.
func NewRunner() *Runner {
	return &Runner{responses: make(map[string][]Response)}
}

// WithResponse queues a response for calls whose program is program.
// Responses for the same program are consumed in order; the last one repeats.
func (r *Runner) WithResponse(program, output string, err error) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[program] = append(r.responses[program], Response{Output: output, Err: err})
	return r
}

// Output records cmd and returns the scripted response.
func (r *Runner) Output(cmd *process.Command) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, clone(cmd))
	fn := r.OutputFunc
	r.mu.Unlock()

	if fn != nil {
		return fn(cmd)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	queue := r.responses[cmd.Program]
	if len(queue) == 0 {
		return "", &process.ExecError{Command: cmd.String(), Err: ErrUnscripted}
	}
	resp := queue[0]
	if len(queue) > 1 {
		r.responses[cmd.Program] = queue[1:]
	}
	return resp.Output, resp.Err
}

// Calls returns copies of all recorded commands in call order.
func (r *Runner) Calls() []process.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]process.Command, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallCount returns the number of recorded calls.
func (r *Runner) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func clone(cmd *process.Command) process.Command {
	c := process.Command{
		Program: cmd.Program,
		Args:    append([]string(nil), cmd.Args...),
		Dir:     cmd.Dir,
		Env:     make(map[string]string, len(cmd.Env)),
	}
	for k, v := range cmd.Env {
		c.Env[k] = v
	}
	return c
}
