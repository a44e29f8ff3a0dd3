// Package simrun invokes the external simulation engine on a produced
// document. The engine is an opaque out-of-process call: we pass paths,
// wait with the caller's timeout, and report where its outputs landed. No
// engine output is interpreted here.
package simrun

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/enermodel/h2khpxml/internal/ctxlog"
)

// Runner configures the external engine invocation.
type Runner struct {
	EnginePath string
	ExtraArgs  []string
	// Timeout bounds one engine run. Zero means no bound beyond ctx.
	Timeout time.Duration
	// Retries is the number of re-attempts after a failed run. Cancellation
	// is never retried.
	Retries int
}

// Result reports one engine run.
type Result struct {
	ExitCode  int
	OutputDir string
	Duration  time.Duration
}

// Run executes the engine for one document/weather pair, writing engine
// outputs under outDir.
func (r *Runner) Run(ctx context.Context, docPath, weatherPath, outDir string) (*Result, error) {
	if r.EnginePath == "" {
		return nil, errors.New("simulation engine path not configured")
	}
	logger := ctxlog.FromContext(ctx)

	var lastErr error
	for attempt := 0; attempt <= r.Retries; attempt++ {
		if attempt > 0 {
			logger.Warn("Retrying simulation run.", "attempt", attempt, "error", lastErr)
		}
		res, err := r.runOnce(ctx, docPath, weatherPath, outDir)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}
	return nil, fmt.Errorf("simulation failed after %d attempt(s): %w", r.Retries+1, lastErr)
}

func (r *Runner) runOnce(ctx context.Context, docPath, weatherPath, outDir string) (*Result, error) {
	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	args := append([]string{}, r.ExtraArgs...)
	args = append(args, "-x", docPath, "-w", weatherPath, "-o", outDir)
	cmd := exec.CommandContext(runCtx, r.EnginePath, args...)

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("engine exited with code %d", exitErr.ExitCode())
		}
		return nil, fmt.Errorf("run engine %s: %w", r.EnginePath, err)
	}
	return &Result{ExitCode: 0, OutputDir: outDir, Duration: elapsed}, nil
}
