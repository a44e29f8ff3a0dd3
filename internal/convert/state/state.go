// Package state holds the mutable per-conversion tracker. One Tracker is
// created per file conversion and discarded afterwards; it is never shared
// between concurrent conversions, so it needs no locking.
package state

import (
	"fmt"

	"github.com/enermodel/h2khpxml/internal/convert/record"
)

// WarningCode classifies a recoverable condition.
type WarningCode string

const (
	// AttachmentAmbiguity: a child component could not name exactly one
	// parent; a deterministic default was applied.
	AttachmentAmbiguity WarningCode = "attachment_ambiguity"
	// UnitOutOfRange: a value fell outside the target schema's domain and
	// was clamped.
	UnitOutOfRange WarningCode = "unit_out_of_range"
	// ValidationFinding: a schema-validation finding reported in permissive
	// mode.
	ValidationFinding WarningCode = "validation_finding"
	// DefaultApplied: a value the source omitted was substituted with a
	// documented default.
	DefaultApplied WarningCode = "default_applied"
)

// Warning is one recoverable condition accumulated during a conversion.
type Warning struct {
	Code    WarningCode
	Stage   string
	Message string
}

// Tracker accumulates identifier counters, warnings, and registries of
// created records for cross-reference lookup. All three are append-only.
type Tracker struct {
	counters map[string]int
	warnings []Warning
	byType   map[string][]record.Record
}

// NewTracker returns an empty tracker for a single conversion.
func NewTracker() *Tracker {
	return &Tracker{
		counters: make(map[string]int),
		byType:   make(map[string][]record.Record),
	}
}

// NextID mints the next identifier for a component type: "{Type}_{n}" with a
// 1-based, strictly increasing n. Identifiers are never reused and are
// deterministic given identical input, which the golden-file regression
// tests rely on.
func (t *Tracker) NextID(componentType string) string {
	t.counters[componentType]++
	return fmt.Sprintf("%s_%d", componentType, t.counters[componentType])
}

// Warn appends to the warnings sequence. It never fails.
func (t *Tracker) Warn(code WarningCode, stage, format string, args ...any) {
	t.warnings = append(t.warnings, Warning{
		Code:    code,
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnings returns the accumulated warnings in emission order.
func (t *Tracker) Warnings() []Warning {
	return t.warnings
}

// Register records a created component for later lookup by other processors.
func (t *Tracker) Register(rec record.Record) {
	t.byType[rec.Type] = append(t.byType[rec.Type], rec)
}

// LookupByType returns prior records of a type in creation order. It never
// fails; an unknown type yields an empty slice and callers validate before
// use.
func (t *Tracker) LookupByType(componentType string) []record.Record {
	return t.byType[componentType]
}
