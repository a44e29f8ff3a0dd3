package enclosure

import (
	"context"
	"strings"

	"github.com/enermodel/h2khpxml/internal/convert/errdefs"
	"github.com/enermodel/h2khpxml/internal/convert/record"
	"github.com/enermodel/h2khpxml/internal/convert/state"
	"github.com/enermodel/h2khpxml/internal/ctxlog"
	"github.com/enermodel/h2khpxml/internal/source"
	"github.com/enermodel/h2khpxml/internal/units"
)

const stageCeilings = "enclosure.ceilings"

// Ceilings emits one Roof record per H2K ceiling component. H2K models the
// whole attic assembly as a ceiling; HPXML wants it as a roof with the
// conditioned boundary expressed via InteriorAdjacentTo.
func Ceilings(ctx context.Context, doc *source.Document, st *state.Tracker) ([]record.Record, error) {
	logger := ctxlog.FromContext(ctx)
	comps := doc.House().Child("Components")

	var out []record.Record
	for _, c := range comps.Each("Ceiling") {
		label := c.Child("Label").TextValue()
		if label == "" {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageCeilings, Path: "House/Components/Ceiling/Label"}
		}

		area, ok := c.Child("Measurements").FloatAttr("area")
		if !ok {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageCeilings, Path: "House/Components/Ceiling/Measurements@area"}
		}

		rsi, ok := wallRSI(c)
		if !ok {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageCeilings, Path: "House/Components/Ceiling/Construction"}
		}
		rsi, clamped := units.Clamp(rsi, minAssemblyRSI, maxAssemblyRSI)
		if clamped {
			st.Warn(state.UnitOutOfRange, stageCeilings, "ceiling %q: assembly RSI clamped to %s", label, units.String2(rsi))
		}

		rec := record.New(st.NextID("Roof"), "Roof")
		rec.Props["InteriorAdjacentTo"] = interiorAdjacent(c)
		rec.Props["Area"] = units.String1(units.M2ToFt2(area))
		rec.Props["RoofType"] = "shingles"
		rec.Props["Insulation/AssemblyEffectiveRValue"] = units.String1(units.RSIToR(rsi))
		rec.Meta[metaLabel] = label

		st.Register(rec)
		out = append(out, rec)
		logger.Debug("Ceiling converted.", "label", label, "id", rec.ID)
	}
	return out, nil
}

// interiorAdjacent maps the H2K ceiling construction type onto the HPXML
// boundary. Cathedral and flat ceilings sit directly against conditioned
// space; every other type implies a vented attic.
func interiorAdjacent(c *source.Node) string {
	typ := strings.ToLower(c.Path("Construction", "CeilingType").TextValue())
	switch typ {
	case "cathedral", "flat":
		return "conditioned space"
	default:
		return "attic - vented"
	}
}
