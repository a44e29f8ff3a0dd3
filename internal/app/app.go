// Package app is the composition root: it wires the logger, settings,
// processor registry, and conversion pipeline together and owns the
// user-facing run report.
package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/enermodel/h2khpxml/internal/processor"
	"github.com/enermodel/h2khpxml/internal/settings"
)

const (
	generatorName    = "h2khpxml"
	generatorVersion = "0.4.1"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *processor.Registry
	settings *settings.Settings
}

// NewApp returns a fully initialized App with its own isolated logger and
// processor registry. Startup faults (unreadable settings, a misassembled
// registry) are programmer or deployment errors and panic; main recovers
// and exits cleanly.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	sts, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		panic(fmt.Errorf("failed to load settings: %w", err))
	}
	logger.Debug("Settings loaded.", "path", cfg.SettingsPath)

	reg := processor.Default()
	if err := reg.Validate(); err != nil {
		// Mismatch between the dispatch table and the canonical stage set
		// is a programmer error.
		panic(err)
	}
	logger.Debug("Processor registry validated.", "stages", len(reg.Stages()))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		settings: sts,
	}
}

// Registry returns the application's processor registry. Primarily for testing.
func (a *App) Registry() *processor.Registry {
	return a.registry
}
