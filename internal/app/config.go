package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	InputPath string // .h2k file or a directory of them

	OutputPath   string // explicit single-file destination
	OutputDir    string // root for derived destinations
	SettingsPath string // optional HCL settings file

	LogFormat    string
	LogLevel     string
	Workers      int
	Strict       bool
	Simulate     bool
	ValidateOnly bool // convert and validate, write nothing
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputPath != "" && cfg.OutputDir != "" {
		return nil, errors.New("OutputPath and OutputDir are mutually exclusive")
	}
	if cfg.Simulate && cfg.ValidateOnly {
		return nil, errors.New("Simulate and ValidateOnly are mutually exclusive")
	}
	return &cfg, nil
}
