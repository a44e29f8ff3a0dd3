// Package errdefs defines the error taxonomy shared by every stage of a
// conversion. Fatal conditions abort the current file only; recoverable
// conditions become warnings on the conversion's state tracker and never
// surface as errors.
package errdefs

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks across package boundaries.
var (
	ErrParse           = errors.New("source document is not well-formed")
	ErrSchemaMismatch  = errors.New("required structural element missing")
	ErrMissingRequired = errors.New("required value missing")
	ErrAssembly        = errors.New("output document assembly failed")
	ErrValidation      = errors.New("output document failed schema validation")
)

// ParseError reports malformed source XML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrParse) hold for any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// SchemaMismatchError reports a structurally required element absent from
// an otherwise well-formed source document.
type SchemaMismatchError struct {
	Element string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("source schema mismatch: missing required element %q", e.Element)
}

func (e *SchemaMismatchError) Is(target error) bool { return target == ErrSchemaMismatch }

// MissingRequiredValueError reports a structurally required value absent
// from a source component. Fatal for the file being converted.
type MissingRequiredValueError struct {
	Stage string // processor stage that needed the value
	Path  string // source-tree path of the missing value
}

func (e *MissingRequiredValueError) Error() string {
	return fmt.Sprintf("%s: required value missing at %s", e.Stage, e.Path)
}

func (e *MissingRequiredValueError) Is(target error) bool { return target == ErrMissingRequired }

// AssemblyError reports a duplicate identifier or unresolved reference
// found while assembling the output document. Always indicates a processor
// defect rather than bad input.
type AssemblyError struct {
	ID     string
	Reason string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembly: %s (id %q)", e.Reason, e.ID)
}

func (e *AssemblyError) Is(target error) bool { return target == ErrAssembly }

// ValidationError wraps schema-validation findings when the caller runs in
// strict mode. Permissive mode reports the same findings as warnings.
type ValidationError struct {
	Count int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %d finding(s)", e.Count)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
