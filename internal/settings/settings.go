// Package settings loads the converter's HCL settings file and exposes it
// as a read-only lookup. The conversion core never parses configuration
// itself; it receives resolved values from here.
package settings

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	ctyconvert "github.com/zclconf/go-cty/cty/convert"
)

// Settings is the decoded settings file. All fields are optional; zero
// values mean "not configured" and callers fall back to their defaults.
type Settings struct {
	EnginePath       string   `hcl:"engine_path,optional"`
	OutputDir        string   `hcl:"output_dir,optional"`
	WeatherIndex     string   `hcl:"weather_index,optional"`
	ValidatorCommand []string `hcl:"validator_command,optional"`
	Flatten          bool     `hcl:"flatten,optional"`

	// simulation_flags is a free-form object of named engine flags. It is
	// decoded separately so values may be strings, numbers, or bools.
	FlagsExpr hcl.Expression `hcl:"simulation_flags,optional"`

	flags map[string]string
}

// Load parses a settings file. A missing path yields empty settings rather
// than an error, so running without a settings file stays supported.
func Load(path string) (*Settings, error) {
	if path == "" {
		return &Settings{flags: map[string]string{}}, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse settings file %s: %w", path, diags)
	}

	var s Settings
	if diags := gohcl.DecodeBody(file.Body, nil, &s); diags.HasErrors() {
		return nil, fmt.Errorf("decode settings file %s: %w", path, diags)
	}
	if err := s.evalFlags(); err != nil {
		return nil, fmt.Errorf("settings file %s: %w", path, err)
	}
	return &s, nil
}

// evalFlags evaluates simulation_flags into a string map. Non-string flag
// values are converted to their string form so the lookup stays uniform.
func (s *Settings) evalFlags() error {
	s.flags = map[string]string{}
	if s.FlagsExpr == nil {
		return nil
	}
	val, diags := s.FlagsExpr.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("evaluate simulation_flags: %w", diags)
	}
	if val.IsNull() {
		return nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return fmt.Errorf("simulation_flags must be an object, got %s", val.Type().FriendlyName())
	}
	for name, v := range val.AsValueMap() {
		str, err := ctyconvert.Convert(v, cty.String)
		if err != nil {
			return fmt.Errorf("simulation flag %q: %w", name, err)
		}
		if str.IsNull() {
			continue
		}
		s.flags[name] = str.AsString()
	}
	return nil
}

// Flag returns a named simulation flag and whether it was configured.
func (s *Settings) Flag(name string) (string, bool) {
	v, ok := s.flags[name]
	return v, ok
}

// Flags returns a copy of all configured simulation flags.
func (s *Settings) Flags() map[string]string {
	out := make(map[string]string, len(s.flags))
	for k, v := range s.flags {
		out[k] = v
	}
	return out
}
