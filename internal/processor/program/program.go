// Package program applies program-mode overrides. Some rating programs
// substitute standardized systems and operating conditions for the ones the
// homeowner actually has, so modeled results are comparable across houses.
// This stage runs last and replaces earlier records wholesale, keeping
// their identifiers.
package program

import (
	"context"

	"github.com/enermodel/h2khpxml/internal/convert/record"
	"github.com/enermodel/h2khpxml/internal/convert/state"
	"github.com/enermodel/h2khpxml/internal/ctxlog"
	"github.com/enermodel/h2khpxml/internal/source"
)

// Reference values substituted in ERS mode. Fixed by the program, not
// derived from the house.
const (
	refWaterHeaterFuel   = "natural gas"
	refWaterHeaterType   = "storage water heater"
	refWaterHeaterVolume = "40"
	refWaterHeaterEF     = "0.62"
	refLightingAnnualkWh = "1680"
)

// Overrides emits replacement records according to the file's program mode.
// A file without a ProgramMode element, or with a mode this converter does
// not implement, passes through untouched.
func Overrides(ctx context.Context, doc *source.Document, st *state.Tracker) ([]record.Record, error) {
	logger := ctxlog.FromContext(ctx)
	mode := doc.ProgramMode()
	if mode == nil {
		return nil, nil
	}
	code, _ := mode.Attr("code")
	if code != "ERS" {
		logger.Debug("Unknown program mode; no overrides applied.", "code", code)
		return nil, nil
	}

	opts := mode.Child("Options")
	var out []record.Record

	if flag, _ := opts.Attr("referenceWaterHeater"); flag == "true" {
		for _, prior := range st.LookupByType("WaterHeatingSystem") {
			repl := record.New(prior.ID, prior.Type)
			repl.Props["FuelType"] = refWaterHeaterFuel
			repl.Props["WaterHeaterType"] = refWaterHeaterType
			repl.Props["TankVolume"] = refWaterHeaterVolume
			repl.Props["FractionDHWLoadServed"] = "1"
			repl.Props["EnergyFactor"] = refWaterHeaterEF
			out = append(out, repl)
			logger.Debug("Water heater replaced by ERS reference system.", "id", prior.ID)
		}
	}

	if flag, _ := opts.Attr("standardLighting"); flag == "true" {
		for _, prior := range st.LookupByType("LightingGroup") {
			repl := record.New(prior.ID, prior.Type)
			repl.Props["Location"] = "interior"
			repl.Props["Load/Units"] = "kWh/year"
			repl.Props["Load/Value"] = refLightingAnnualkWh
			out = append(out, repl)
			logger.Debug("Lighting load replaced by ERS standard value.", "id", prior.ID)
		}
	}

	return out, nil
}
