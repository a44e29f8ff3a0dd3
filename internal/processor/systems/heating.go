// Package systems translates the H2K mechanical systems: space heating,
// space cooling, whole-house ventilation, and domestic hot water. It runs
// after the enclosure processors so records minted here never collide with
// enclosure identifiers.
package systems

import (
	"context"

	"github.com/enermodel/h2khpxml/internal/convert/errdefs"
	"github.com/enermodel/h2khpxml/internal/convert/record"
	"github.com/enermodel/h2khpxml/internal/convert/state"
	"github.com/enermodel/h2khpxml/internal/ctxlog"
	"github.com/enermodel/h2khpxml/internal/source"
	"github.com/enermodel/h2khpxml/internal/units"
)

const stageHeating = "systems.heating"

// fuelNames maps H2K EnergySource codes to HPXML fuel names.
var fuelNames = map[string]string{
	"1": "electricity",
	"2": "natural gas",
	"3": "fuel oil",
	"4": "propane",
	"5": "wood",
}

// heatingEfficiencyRange bounds a plausible steady-state or annual
// efficiency fraction.
const (
	minEfficiency = 0.3
	maxEfficiency = 1.0
)

// Heating emits one HeatingSystem record for the primary H2K heating
// system. A furnace or boiler maps to its HPXML counterpart with an AFUE
// rating; electric baseboards map to electric resistance with a Percent
// rating.
func Heating(ctx context.Context, doc *source.Document, st *state.Tracker) ([]record.Record, error) {
	logger := ctxlog.FromContext(ctx)
	type1 := doc.House().Path("HeatingCooling", "Type1")
	if type1 == nil {
		return nil, nil
	}

	var (
		kind     string // HPXML system type element
		effUnits string
		src      *source.Node
	)
	switch {
	case type1.Child("Furnace") != nil:
		kind, effUnits, src = "Furnace", "AFUE", type1.Child("Furnace")
	case type1.Child("Boiler") != nil:
		kind, effUnits, src = "Boiler", "AFUE", type1.Child("Boiler")
	case type1.Child("Baseboards") != nil:
		kind, effUnits, src = "ElectricResistance", "Percent", type1.Child("Baseboards")
	default:
		// Source concept with no target equivalent; nothing to emit.
		logger.Debug("No recognized primary heating system; skipping.")
		return nil, nil
	}

	spec := src.Child("Specifications")
	capKW, ok := spec.Path("OutputCapacity").FloatAttr("value")
	if !ok {
		return nil, &errdefs.MissingRequiredValueError{Stage: stageHeating, Path: "House/HeatingCooling/Type1/" + kind + "/Specifications/OutputCapacity@value"}
	}

	rec := record.New(st.NextID("HeatingSystem"), "HeatingSystem")
	rec.Props["HeatingSystemType/"+kind] = ""
	rec.Props["HeatingSystemFuel"] = heatingFuel(src, kind)
	rec.Props["HeatingCapacity"] = units.String1(units.KWToBtuh(capKW))
	rec.Props["AnnualHeatingEfficiency/Units"] = effUnits
	rec.Props["AnnualHeatingEfficiency/Value"] = efficiencyValue(st, spec, kind)
	rec.Props["FractionHeatLoadServed"] = "1"

	st.Register(rec)
	logger.Debug("Heating system converted.", "kind", kind, "id", rec.ID)
	return []record.Record{rec}, nil
}

// heatingFuel resolves the fuel name; electric resistance is always
// electricity regardless of what the export carries.
func heatingFuel(src *source.Node, kind string) string {
	if kind == "ElectricResistance" {
		return "electricity"
	}
	code, _ := src.Path("Equipment", "EnergySource").Attr("code")
	if name, ok := fuelNames[code]; ok {
		return name
	}
	return "natural gas"
}

// efficiencyValue reads the percent efficiency and converts it to the
// fraction HPXML expects, clamping out-of-range values with a warning.
func efficiencyValue(st *state.Tracker, spec *source.Node, kind string) string {
	pct, ok := spec.FloatAttr("efficiency")
	if !ok {
		// Electric resistance is 100% efficient by definition.
		if kind == "ElectricResistance" {
			return "1"
		}
		pct = 80
		st.Warn(state.DefaultApplied, stageHeating, "heating efficiency missing; default 80%% applied")
	}
	frac, clamped := units.Clamp(pct/100, minEfficiency, maxEfficiency)
	if clamped {
		st.Warn(state.UnitOutOfRange, stageHeating, "heating efficiency clamped to %s", units.String2(frac))
	}
	return units.String2(frac)
}
