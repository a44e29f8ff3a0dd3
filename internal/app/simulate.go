package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/enermodel/h2khpxml/internal/convert"
	"github.com/enermodel/h2khpxml/internal/simrun"
	"github.com/enermodel/h2khpxml/internal/weather"
)

// simTimeout bounds one engine run. The engine is opaque; a stuck run must
// not hang the whole batch.
const simTimeout = 30 * time.Minute

// simulate runs the external engine for one converted file: resolve the
// weather path from the document's location code, then hand both paths to
// the invoker.
func (a *App) simulate(ctx context.Context, res convert.Result) error {
	if a.settings.EnginePath == "" {
		return fmt.Errorf("simulation requested but engine_path is not configured")
	}
	if a.settings.WeatherIndex == "" {
		return fmt.Errorf("simulation requested but weather_index is not configured")
	}
	idx, err := weather.LoadIndex(a.settings.WeatherIndex)
	if err != nil {
		return err
	}
	weatherPath, err := idx.Resolve(res.WeatherCode)
	if err != nil {
		return fmt.Errorf("%s: %w", res.InputPath, err)
	}

	runner := &simrun.Runner{
		EnginePath: a.settings.EnginePath,
		ExtraArgs:  flagArgs(a.settings.Flags()),
		Timeout:    simTimeout,
		Retries:    1,
	}
	outDir := filepath.Join(filepath.Dir(res.OutputPath), "run-"+strings.TrimSuffix(filepath.Base(res.OutputPath), ".xml"))

	simRes, err := runner.Run(ctx, res.OutputPath, weatherPath, outDir)
	if err != nil {
		return fmt.Errorf("simulate %s: %w", res.OutputPath, err)
	}
	a.logger.Info("Simulation finished.", "document", res.OutputPath, "outputs", simRes.OutputDir, "duration", simRes.Duration)
	fmt.Fprintf(a.outW, "simulated %s (outputs in %s)\n", res.OutputPath, simRes.OutputDir)
	return nil
}

// flagArgs renders the configured simulation flags as stable command-line
// arguments.
func flagArgs(flags map[string]string) []string {
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	sort.Strings(names)
	args := make([]string, 0, len(names))
	for _, name := range names {
		args = append(args, "--"+name+"="+flags[name])
	}
	return args
}
