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

const stageDoors = "enclosure.doors"

const (
	minDoorRSI = 0.05
	maxDoorRSI = 4.0
)

// Doors emits one Door record per H2K door component, attached to its
// owning wall the same way windows are.
func Doors(ctx context.Context, doc *source.Document, st *state.Tracker) ([]record.Record, error) {
	logger := ctxlog.FromContext(ctx)
	comps := doc.House().Child("Components")

	var out []record.Record
	for _, d := range comps.Each("Door") {
		label := d.Child("Label").TextValue()
		if label == "" {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageDoors, Path: "House/Components/Door/Label"}
		}

		meas := d.Child("Measurements")
		height, hok := meas.FloatAttr("height")
		width, wok := meas.FloatAttr("width")
		if !hok || !wok {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageDoors, Path: "House/Components/Door/Measurements"}
		}

		rsi, ok := d.Path("Construction", "Type").FloatAttr("rValue")
		if !ok {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageDoors, Path: "House/Components/Door/Construction/Type@rValue"}
		}
		rsi, clamped := units.Clamp(rsi, minDoorRSI, maxDoorRSI)
		if clamped {
			st.Warn(state.UnitOutOfRange, stageDoors, "door %q: RSI clamped to %s", label, units.String2(rsi))
		}

		orientation, _ := facing(d)
		parentLabel := d.Child("ParentWall").TextValue()
		wall, ok := resolveParentWall(st, stageDoors, label, parentLabel, orientation)
		if !ok {
			continue
		}

		rec := record.New(st.NextID("Door"), "Door")
		rec.Refs["AttachedToWall"] = wall.ID
		rec.Props["Area"] = units.String1(units.M2ToFt2(height * width))
		rec.Props["RValue"] = units.String1(units.RSIToR(rsi))
		rec.Meta[metaLabel] = label

		if orientation == "" {
			orientation = wall.Meta[metaOrientation]
		}
		if az, ok := units.Azimuth(orientation); ok {
			rec.Props["Azimuth"] = strconv.Itoa(az)
			rec.Meta[metaOrientation] = orientation
		}

		st.Register(rec)
		out = append(out, rec)
		logger.Debug("Door converted.", "label", label, "id", rec.ID, "wall", wall.ID)
	}
	return out, nil
}
