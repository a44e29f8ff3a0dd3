// Package processor defines the contract every component processor follows
// and the closed dispatch table that fixes their execution order.
//
// A processor reads one building subsystem's subtree plus the conversion's
// state tracker and emits zero or more normalized records. The registry maps
// stage names to implementations and is validated at startup, so a missing
// or misordered stage is caught before any file is converted.
package processor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/enermodel/h2khpxml/internal/convert/record"
	"github.com/enermodel/h2khpxml/internal/convert/state"
	"github.com/enermodel/h2khpxml/internal/source"
)

// Func is the processor contract: relevant source tree plus tracker in,
// ordered records out. Implementations must be deterministic.
type Func func(ctx context.Context, doc *source.Document, st *state.Tracker) ([]record.Record, error)

// Stage is one named entry in the dispatch table.
type Stage struct {
	Name string
	Fn   Func
	// Overrides marks a stage whose records replace earlier records with
	// the same identifier instead of being appended. Only the program-mode
	// stage sets this, and it must run last.
	Overrides bool
}

// Registry is the closed dispatch table of processor stages. Stages run in
// registration order; Validate checks the canonical set and ordering.
type Registry struct {
	stages []Stage
	byName map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]struct{})}
}

// Register appends a stage. Registering the same name twice is a programmer
// error and panics, matching startup-time configuration faults.
func (r *Registry) Register(s Stage) {
	if s.Name == "" || s.Fn == nil {
		panic("processor: stage must have a name and a function")
	}
	if _, exists := r.byName[s.Name]; exists {
		panic(fmt.Sprintf("processor: stage %q already registered", s.Name))
	}
	slog.Debug("Registering processor stage.", "name", s.Name)
	r.byName[s.Name] = struct{}{}
	r.stages = append(r.stages, s)
}

// Stages returns the stages in execution order.
func (r *Registry) Stages() []Stage {
	return r.stages
}

// canonicalOrder is the fixed processing order: enclosure first because
// systems and loads reference enclosure identifiers, program overrides last
// because they may replace earlier decisions.
var canonicalOrder = []string{
	"enclosure.walls",
	"enclosure.windows",
	"enclosure.doors",
	"enclosure.ceilings",
	"enclosure.foundations",
	"systems.heating",
	"systems.cooling",
	"systems.ventilation",
	"systems.dhw",
	"baseloads",
	"program.overrides",
}

// Validate performs a strict parity check between the registered stages and
// the canonical stage set: every canonical stage present, no strangers, and
// execution order matching the canonical order. An override stage anywhere
// but last is rejected.
func (r *Registry) Validate() error {
	if len(r.stages) != len(canonicalOrder) {
		return fmt.Errorf("processor registry: %d stages registered, want %d", len(r.stages), len(canonicalOrder))
	}
	for i, s := range r.stages {
		if s.Name != canonicalOrder[i] {
			return fmt.Errorf("processor registry: stage %d is %q, want %q", i, s.Name, canonicalOrder[i])
		}
		if s.Overrides && i != len(r.stages)-1 {
			return fmt.Errorf("processor registry: override stage %q must run last", s.Name)
		}
	}
	return nil
}
