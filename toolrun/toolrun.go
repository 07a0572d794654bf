// Package toolrun invokes external optimizer tools (image and media
// encoders) as opaque processes: an argument list in, an exit code and
// captured stdout/stderr out.
//
// The contract with such tools is deliberately thin: a zero exit code means
// success, and any produced output file must be verified to exist before it
// is trusted.
package toolrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/time/rate"
)

// Result captures one tool invocation.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the tool exited with code zero.
func (r *Result) Success() bool { return r.ExitCode == 0 }

// Options configures a Runner.
type Options struct {
	// InvocationsPerSec rate-limits Run calls. If 0, unlimited.
	InvocationsPerSec float64
}

// Runner executes external tools. Safe for concurrent use.
type Runner struct {
	limiter *rate.Limiter
}

// NewRunner creates a Runner.
func NewRunner(optFns ...func(*Options)) *Runner {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	r := &Runner{}
	if opts.InvocationsPerSec > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(opts.InvocationsPerSec), 1)
	}
	return r
}

// Run executes tool with args and returns the captured result.
//
// A non-zero exit code is not an error: the Result carries the code and the
// caller inspects it. An error is returned only when the tool could not be
// started or the context was canceled.
func (r *Runner) Run(ctx context.Context, tool string, args ...string) (*Result, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return nil, fmt.Errorf("toolrun: %s: %w", tool, err)
	}
	return res, nil
}

// RunExpectOutput executes tool with args and additionally verifies that
// outputPath exists after a successful exit. A missing output file after a
// zero exit code is reported as an error, since a tool's exit code alone is
// not proof the file was written.
func (r *Runner) RunExpectOutput(ctx context.Context, tool string, outputPath string, args ...string) (*Result, error) {
	res, err := r.Run(ctx, tool, args...)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return res, nil
	}

	if _, statErr := os.Stat(outputPath); statErr != nil {
		return res, fmt.Errorf("toolrun: %s reported success but output %q is missing: %w", tool, outputPath, statErr)
	}
	return res, nil
}
