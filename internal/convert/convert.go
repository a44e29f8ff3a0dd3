// Package convert orchestrates one file conversion end to end: parse,
// processor pipeline, assembly, serialization, validation, atomic write.
// Each conversion owns its source tree, tracker, and output tree, so
// conversions are independent units that may run in parallel.
package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/enermodel/h2khpxml/internal/convert/errdefs"
	"github.com/enermodel/h2khpxml/internal/convert/record"
	"github.com/enermodel/h2khpxml/internal/convert/state"
	"github.com/enermodel/h2khpxml/internal/ctxlog"
	"github.com/enermodel/h2khpxml/internal/fsutil"
	"github.com/enermodel/h2khpxml/internal/hpxml"
	"github.com/enermodel/h2khpxml/internal/processor"
	"github.com/enermodel/h2khpxml/internal/source"
	"github.com/enermodel/h2khpxml/internal/units"
	"github.com/enermodel/h2khpxml/internal/validate"
)

// Options configures a conversion. The zero value is not usable; callers
// must provide at least a Registry.
type Options struct {
	// OutputPath forces the output location for a single-file conversion.
	// Empty means derive from OutputDir.
	OutputPath string
	// OutputDir is the root for derived output paths.
	OutputDir string
	// InputRoot, when set, makes derived batch output paths mirror the
	// input directory structure beneath OutputDir.
	InputRoot string
	// Flatten drops input directory structure from derived paths.
	Flatten bool
	// Strict turns validation findings into a fatal error; otherwise they
	// accumulate as warnings.
	Strict bool
	// ValidateOnly runs the full pipeline through validation but never
	// publishes an output document.
	ValidateOnly bool
	// Workers bounds batch parallelism. Zero means max(1, GOMAXPROCS-1).
	Workers int

	GeneratorName    string
	GeneratorVersion string

	// Now supplies the document timestamp. Injectable so converting the
	// same file twice yields byte-identical output.
	Now func() time.Time

	Registry *processor.Registry
	// ExternalValidator, when non-nil, runs after the built-in structural
	// check against the written file.
	ExternalValidator *validate.External
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Result is the outcome of one file conversion. Err is nil on success;
// Stage names the pipeline stage an error originated from.
type Result struct {
	InputPath   string
	OutputPath  string
	WeatherCode string
	Warnings    []state.Warning
	Stage       string
	Err         error
}

// Convert translates one source file. Fatal conditions abort this file
// only; recoverable conditions accumulate as warnings and conversion
// continues.
func Convert(ctx context.Context, inputPath string, opts Options) Result {
	logger := ctxlog.FromContext(ctx).With("file", inputPath)
	ctx = ctxlog.WithLogger(ctx, logger)
	res := Result{InputPath: inputPath}

	fail := func(stage string, err error) Result {
		res.Stage, res.Err = stage, err
		logger.Error("Conversion failed.", "stage", stage, "error", err)
		return res
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fail("read", err)
	}
	doc, err := source.Parse(f)
	f.Close()
	if err != nil {
		if pe, ok := err.(*errdefs.ParseError); ok {
			pe.Path = inputPath
		}
		return fail("parse", err)
	}
	res.WeatherCode, _ = doc.WeatherLocation()

	st := state.NewTracker()
	var records []record.Record
	for _, stage := range opts.Registry.Stages() {
		// Cancellation is cooperative and checked between stages.
		if err := ctx.Err(); err != nil {
			return fail(stage.Name, err)
		}
		recs, err := stage.Fn(ctx, doc, st)
		if err != nil {
			return fail(stage.Name, err)
		}
		if stage.Overrides {
			records = applyOverrides(records, recs)
		} else {
			records = append(records, recs...)
		}
	}
	res.Warnings = st.Warnings()

	if err := ctx.Err(); err != nil {
		return fail("assemble", err)
	}
	root, err := hpxml.Assemble(buildMeta(doc, opts), records)
	if err != nil {
		return fail("assemble", err)
	}
	data := hpxml.Serialize(root)

	findings, err := validate.Check(data)
	if err != nil {
		return fail("validate", err)
	}
	if len(findings) > 0 {
		if opts.Strict {
			logger.Error("Validation findings in strict mode.", "count", len(findings))
			return fail("validate", &errdefs.ValidationError{Count: len(findings)})
		}
		for _, fd := range findings {
			st.Warn(state.ValidationFinding, "validate", "%s", fd.String())
		}
		res.Warnings = st.Warnings()
	}

	if opts.ValidateOnly && opts.ExternalValidator == nil {
		logger.Info("Validation finished; no output written.", "warnings", len(res.Warnings))
		return res
	}

	// The document is staged to a temp file so the external validator sees
	// the exact bytes, and a file that fails strict validation never reaches
	// the final path.
	outPath := deriveOutputPath(inputPath, opts)
	tmpPath, err := fsutil.StageFile(outPath, data, 0o644)
	if err != nil {
		return fail("write", err)
	}

	if opts.ExternalValidator != nil {
		extFindings, err := opts.ExternalValidator.Run(ctx, tmpPath)
		if err != nil {
			os.Remove(tmpPath)
			return fail("validate", err)
		}
		if len(extFindings) > 0 {
			if opts.Strict {
				os.Remove(tmpPath)
				return fail("validate", &errdefs.ValidationError{Count: len(extFindings)})
			}
			for _, fd := range extFindings {
				st.Warn(state.ValidationFinding, "validate", "%s", fd.String())
			}
			res.Warnings = st.Warnings()
		}
	}

	if opts.ValidateOnly {
		os.Remove(tmpPath)
		logger.Info("Validation finished; no output written.", "warnings", len(res.Warnings))
		return res
	}

	if err := fsutil.PromoteFile(tmpPath, outPath); err != nil {
		return fail("write", err)
	}
	res.OutputPath = outPath

	logger.Info("Conversion succeeded.", "output", outPath, "warnings", len(res.Warnings))
	return res
}

// applyOverrides substitutes replacement records in place by identifier.
// A replacement whose identifier matches nothing is appended; that only
// happens if an override stage invents records, which none do today.
func applyOverrides(records []record.Record, replacements []record.Record) []record.Record {
	for _, repl := range replacements {
		replaced := false
		for i := range records {
			if records[i].ID == repl.ID {
				records[i] = repl
				replaced = true
				break
			}
		}
		if !replaced {
			records = append(records, repl)
		}
	}
	return records
}

// buildMeta extracts the document-level facts for the assembler.
func buildMeta(doc *source.Document, opts Options) hpxml.Meta {
	meta := hpxml.Meta{
		BuildingID:       doc.BuildingID(),
		GeneratedAt:      opts.now(),
		GeneratorName:    opts.GeneratorName,
		GeneratorVersion: opts.GeneratorVersion,
	}
	meta.WeatherCode, meta.WeatherName = doc.WeatherLocation()

	spec := doc.House().Child("Specifications")
	if y, ok := spec.Attr("yearBuilt"); ok {
		meta.YearBuilt = strings.TrimSpace(y)
	}
	if s, ok := spec.Attr("storeys"); ok {
		meta.ConditionedFloors = strings.TrimSpace(s)
	}
	hfa := spec.Child("HeatedFloorArea")
	above, aok := hfa.FloatAttr("aboveGrade")
	below, bok := hfa.FloatAttr("belowGrade")
	if aok || bok {
		meta.ConditionedFloorArea = units.String1(units.M2ToFt2(above + below))
	}
	return meta
}

// deriveOutputPath picks the destination for one input file. An explicit
// OutputPath wins; otherwise the input's relative structure is mirrored (or
// flattened) beneath OutputDir with the target extension.
func deriveOutputPath(inputPath string, opts Options) string {
	if opts.OutputPath != "" {
		return opts.OutputPath
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + ".xml"
	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	if !opts.Flatten && opts.InputRoot != "" {
		if rel, err := filepath.Rel(opts.InputRoot, filepath.Dir(inputPath)); err == nil && !strings.HasPrefix(rel, "..") {
			dir = filepath.Join(dir, rel)
		}
	}
	return filepath.Join(dir, base)
}
