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

const stageCooling = "systems.cooling"

// seerRange bounds plausible seasonal cooling ratings.
const (
	minSEER = 8.0
	maxSEER = 30.0
)

// Cooling emits one CoolingSystem record when the H2K file carries a Type2
// air conditioner. Houses without mechanical cooling emit nothing.
func Cooling(ctx context.Context, doc *source.Document, st *state.Tracker) ([]record.Record, error) {
	logger := ctxlog.FromContext(ctx)
	ac := doc.House().Path("HeatingCooling", "Type2", "AirConditioning")
	if ac == nil {
		return nil, nil
	}

	spec := ac.Child("Specifications")
	capKW, ok := spec.Path("RatedCapacity").FloatAttr("value")
	if !ok {
		return nil, &errdefs.MissingRequiredValueError{Stage: stageCooling, Path: "House/HeatingCooling/Type2/AirConditioning/Specifications/RatedCapacity@value"}
	}
	cop, ok := spec.Path("RatedCapacity").FloatAttr("cop")
	if !ok {
		return nil, &errdefs.MissingRequiredValueError{Stage: stageCooling, Path: "House/HeatingCooling/Type2/AirConditioning/Specifications/RatedCapacity@cop"}
	}

	seer, clamped := units.Clamp(units.CopToSeer(cop), minSEER, maxSEER)
	if clamped {
		st.Warn(state.UnitOutOfRange, stageCooling, "cooling SEER clamped to %s", units.String1(seer))
	}

	rec := record.New(st.NextID("CoolingSystem"), "CoolingSystem")
	rec.Props["CoolingSystemType"] = "central air conditioner"
	rec.Props["CoolingSystemFuel"] = "electricity"
	rec.Props["CoolingCapacity"] = units.String1(units.KWToBtuh(capKW))
	rec.Props["AnnualCoolingEfficiency/Units"] = "SEER"
	rec.Props["AnnualCoolingEfficiency/Value"] = units.String1(seer)
	rec.Props["FractionCoolLoadServed"] = "1"

	st.Register(rec)
	logger.Debug("Cooling system converted.", "id", rec.ID)
	return []record.Record{rec}, nil
}
