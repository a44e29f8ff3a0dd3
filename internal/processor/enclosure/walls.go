// Package enclosure translates the H2K envelope components: walls, windows,
// doors, ceilings, and foundations. Walls run first so that child
// components can resolve their attachments against the tracker.
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

const stageWalls = "enclosure.walls"

// Meta keys shared by the enclosure processors.
const (
	metaLabel       = "label"
	metaOrientation = "orientation"
)

// assemblyRSIRange is the plausible domain for a wall or ceiling assembly.
// Values outside it are clamped with a warning.
const (
	minAssemblyRSI = 0.1
	maxAssemblyRSI = 20.0
)

// Walls emits one Wall record per H2K wall component.
func Walls(ctx context.Context, doc *source.Document, st *state.Tracker) ([]record.Record, error) {
	logger := ctxlog.FromContext(ctx)
	comps := doc.House().Child("Components")

	var out []record.Record
	for _, w := range comps.Each("Wall") {
		label := w.Child("Label").TextValue()
		if label == "" {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageWalls, Path: "House/Components/Wall/Label"}
		}

		meas := w.Child("Measurements")
		height, hok := meas.FloatAttr("height")
		perimeter, pok := meas.FloatAttr("perimeter")
		if !hok || !pok {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageWalls, Path: "House/Components/Wall/Measurements"}
		}

		rsi, ok := wallRSI(w)
		if !ok {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageWalls, Path: "House/Components/Wall/Construction"}
		}
		rsi, clamped := units.Clamp(rsi, minAssemblyRSI, maxAssemblyRSI)
		if clamped {
			st.Warn(state.UnitOutOfRange, stageWalls, "wall %q: assembly RSI clamped to %s", label, units.String2(rsi))
		}

		rec := record.New(st.NextID("Wall"), "Wall")
		rec.Props["WallType/WoodStud"] = ""
		rec.Props["Area"] = units.String1(units.M2ToFt2(height * perimeter))
		rec.Props["Insulation/AssemblyEffectiveRValue"] = units.String1(units.RSIToR(rsi))
		rec.Meta[metaLabel] = label

		if name, ok := facing(w); ok {
			if az, ok := units.Azimuth(name); ok {
				rec.Props["Azimuth"] = strconv.Itoa(az)
			}
			rec.Meta[metaOrientation] = name
		}

		st.Register(rec)
		out = append(out, rec)
		logger.Debug("Wall converted.", "label", label, "id", rec.ID)
	}
	return out, nil
}

// wallRSI extracts the assembly resistance: an explicit rValue on the
// construction type wins, otherwise the composite is derived from the
// individual layers plus air films.
func wallRSI(w *source.Node) (float64, bool) {
	construction := w.Child("Construction")
	if r, ok := construction.Child("Type").FloatAttr("rValue"); ok {
		return r, true
	}
	layers := construction.Child("Layers")
	if layers == nil {
		return 0, false
	}
	var rsis []float64
	for _, l := range layers.Each("Layer") {
		if r, ok := l.FloatAttr("rsi"); ok {
			rsis = append(rsis, r)
		}
	}
	if len(rsis) == 0 {
		return 0, false
	}
	return units.EffectiveAssemblyRSI(rsis), true
}

// facing reads a component's FacingDirection, accepting either the numeric
// code attribute or the element text.
func facing(n *source.Node) (string, bool) {
	fd := n.Child("FacingDirection")
	if fd == nil {
		return "", false
	}
	if code, ok := fd.Attr("code"); ok {
		if name, ok := units.OrientationName(code); ok {
			return name, true
		}
	}
	return units.OrientationName(fd.TextValue())
}
