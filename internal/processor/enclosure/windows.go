package enclosure

import (
	"context"
	"strconv"

	"github.com/enermodel/h2khpxml/internal/convert/errdefs"
	"github.com/enermodel/h2khpxml/internal/convert/record"
	"github.com/enermodel/h2khpxml/internal/convert/state"
	"github.com/enermodel/h2khpxml/internal/ctxlog"
	"github.com/enermodel/h2khpxml/internal/source"
	"github.com/enermodel/h2khpxml/internal/units"
)

const stageWindows = "enclosure.windows"

// uFactorRange is the plausible imperial U-factor domain for fenestration.
const (
	minUFactor = 0.1
	maxUFactor = 1.4
)

// Windows emits one Window record per H2K window component, attached to its
// owning wall by generated identifier.
func Windows(ctx context.Context, doc *source.Document, st *state.Tracker) ([]record.Record, error) {
	logger := ctxlog.FromContext(ctx)
	comps := doc.House().Child("Components")

	var out []record.Record
	for _, w := range comps.Each("Window") {
		label := w.Child("Label").TextValue()
		if label == "" {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageWindows, Path: "House/Components/Window/Label"}
		}

		meas := w.Child("Measurements")
		heightMM, hok := meas.FloatAttr("height")
		widthMM, wok := meas.FloatAttr("width")
		if !hok || !wok {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageWindows, Path: "House/Components/Window/Measurements"}
		}

		usi, ok := w.Path("Construction", "Type").FloatAttr("uValue")
		if !ok {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageWindows, Path: "House/Components/Window/Construction/Type@uValue"}
		}

		orientation, _ := facing(w)
		parentLabel := w.Child("ParentWall").TextValue()
		wall, ok := resolveParentWall(st, stageWindows, label, parentLabel, orientation)
		if !ok {
			continue
		}

		uFactor := units.USIToU(usi)
		uFactor, clamped := units.Clamp(uFactor, minUFactor, maxUFactor)
		if clamped {
			st.Warn(state.UnitOutOfRange, stageWindows, "window %q: U-factor clamped to %s", label, units.String2(uFactor))
		}

		rec := record.New(st.NextID("Window"), "Window")
		rec.Props["Area"] = units.String1(units.M2ToFt2(units.WindowAreaM2(heightMM, widthMM)))
		rec.Props["UFactor"] = units.String2(uFactor)
		if shgc, ok := w.Path("Construction", "Type").FloatAttr("shgc"); ok {
			rec.Props["SHGC"] = units.String2(shgc)
		}
		rec.Refs["AttachedToWall"] = wall.ID
		rec.Meta[metaLabel] = label

		// A window without its own facing inherits the wall's orientation.
		if orientation == "" {
			orientation = wall.Meta[metaOrientation]
		}
		if az, ok := units.Azimuth(orientation); ok {
			rec.Props["Azimuth"] = strconv.Itoa(az)
			rec.Meta[metaOrientation] = orientation
		}

		st.Register(rec)
		out = append(out, rec)
		logger.Debug("Window converted.", "label", label, "id", rec.ID, "wall", wall.ID)
	}
	return out, nil
}
