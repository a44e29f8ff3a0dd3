package app

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/enermodel/h2khpxml/internal/convert"
	"github.com/enermodel/h2khpxml/internal/ctxlog"
	"github.com/enermodel/h2khpxml/internal/fsutil"
	"github.com/enermodel/h2khpxml/internal/validate"
)

// Run executes the conversion(s) described by the configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	info, err := os.Stat(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("input path: %w", err)
	}

	opts := a.convertOptions(cfg)

	if !info.IsDir() {
		return a.runSingle(ctx, cfg, opts)
	}
	return a.runBatch(ctx, cfg, opts)
}

func (a *App) convertOptions(cfg *Config) convert.Options {
	opts := convert.Options{
		OutputPath:       cfg.OutputPath,
		OutputDir:        cfg.OutputDir,
		Strict:           cfg.Strict,
		ValidateOnly:     cfg.ValidateOnly,
		Workers:          cfg.Workers,
		GeneratorName:    generatorName,
		GeneratorVersion: generatorVersion,
		Registry:         a.registry,
		Flatten:          a.settings.Flatten,
	}
	if opts.OutputDir == "" && a.settings.OutputDir != "" && opts.OutputPath == "" {
		opts.OutputDir = a.settings.OutputDir
	}
	if len(a.settings.ValidatorCommand) > 0 {
		opts.ExternalValidator = &validate.External{Command: a.settings.ValidatorCommand}
	}
	return opts
}

func (a *App) runSingle(ctx context.Context, cfg *Config, opts convert.Options) error {
	res := convert.Convert(ctx, cfg.InputPath, opts)
	a.reportWarnings(res)
	if res.Err != nil {
		return fmt.Errorf("convert %s (stage %s): %w", res.InputPath, res.Stage, res.Err)
	}
	if cfg.ValidateOnly {
		fmt.Fprintf(a.outW, "validated %s\n", res.InputPath)
		return nil
	}
	fmt.Fprintf(a.outW, "converted %s -> %s\n", res.InputPath, res.OutputPath)

	if cfg.Simulate {
		if err := a.simulate(ctx, res); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) runBatch(ctx context.Context, cfg *Config, opts convert.Options) error {
	inputs, err := fsutil.FindFilesByExtension(cfg.InputPath, ".h2k")
	if err != nil {
		return fmt.Errorf("scan input directory: %w", err)
	}
	if len(inputs) == 0 {
		a.logger.Warn("No .h2k files found in input path.", "path", cfg.InputPath)
		return nil
	}
	sort.Strings(inputs)
	opts.InputRoot = cfg.InputPath

	progress := func(res convert.Result) {
		if res.Err != nil {
			a.logger.Error("File failed.", "file", res.InputPath, "stage", res.Stage, "error", res.Err)
			return
		}
		a.logger.Info("File converted.", "file", res.InputPath, "output", res.OutputPath, "warnings", len(res.Warnings))
	}

	batch := convert.ConvertBatch(ctx, inputs, opts, progress)

	// Per-file breakdown with the originating error and offending stage.
	for _, res := range batch.Files {
		a.reportWarnings(res)
		switch {
		case res.Err != nil:
			fmt.Fprintf(a.outW, "FAILED  %s (stage %s): %v\n", res.InputPath, res.Stage, res.Err)
		case cfg.ValidateOnly:
			fmt.Fprintf(a.outW, "ok      %s (validated)\n", res.InputPath)
		default:
			fmt.Fprintf(a.outW, "ok      %s -> %s\n", res.InputPath, res.OutputPath)
		}
	}
	fmt.Fprintf(a.outW, "batch %s: %d/%d converted\n", batch.Status, len(batch.Files)-batch.Failed(), len(batch.Files))

	if cfg.Simulate {
		for _, res := range batch.Files {
			if res.Err != nil {
				continue
			}
			if err := a.simulate(ctx, res); err != nil {
				return err
			}
		}
	}

	if batch.Failed() > 0 {
		return fmt.Errorf("batch finished with status %q: %d of %d files failed", batch.Status, batch.Failed(), len(batch.Files))
	}
	return nil
}

func (a *App) reportWarnings(res convert.Result) {
	for _, w := range res.Warnings {
		fmt.Fprintf(a.outW, "warning %s [%s/%s]: %s\n", res.InputPath, w.Stage, w.Code, w.Message)
	}
}
