package enclosure

import (
	"context"

	"github.com/enermodel/h2khpxml/internal/convert/errdefs"
	"github.com/enermodel/h2khpxml/internal/convert/record"
	"github.com/enermodel/h2khpxml/internal/convert/state"
	"github.com/enermodel/h2khpxml/internal/ctxlog"
	"github.com/enermodel/h2khpxml/internal/source"
	"github.com/enermodel/h2khpxml/internal/units"
)

const stageFoundations = "enclosure.foundations"

// slabThicknessIn is the nominal slab thickness HPXML expects when the
// source does not model one; H2K never does.
const slabThicknessIn = "4"

// Foundations decomposes each H2K foundation component into its HPXML
// parts. A basement becomes a Foundation plus a FoundationWall plus a Slab;
// a crawlspace becomes a Foundation plus a FoundationWall; a slab-on-grade
// becomes a Foundation plus a Slab. The Foundation record references the
// parts by identifier.
func Foundations(ctx context.Context, doc *source.Document, st *state.Tracker) ([]record.Record, error) {
	logger := ctxlog.FromContext(ctx)
	comps := doc.House().Child("Components")

	var out []record.Record
	emit := func(recs ...record.Record) {
		for _, r := range recs {
			st.Register(r)
			out = append(out, r)
		}
	}

	for _, b := range comps.Each("Basement") {
		label := b.Child("Label").TextValue()
		if label == "" {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageFoundations, Path: "House/Components/Basement/Label"}
		}
		wall, err := foundationWall(b, st, label, "basement")
		if err != nil {
			return nil, err
		}
		slab, err := foundationSlab(b, st, label, "Basement")
		if err != nil {
			return nil, err
		}
		fd := record.New(st.NextID("Foundation"), "Foundation")
		fd.Props["FoundationType/Basement/Conditioned"] = "true"
		fd.Refs["AttachedToFoundationWall"] = wall.ID
		fd.Refs["AttachedToSlab"] = slab.ID
		fd.Meta[metaLabel] = label
		emit(wall, slab, fd)
		logger.Debug("Basement converted.", "label", label, "id", fd.ID)
	}

	for _, c := range comps.Each("Crawlspace") {
		label := c.Child("Label").TextValue()
		if label == "" {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageFoundations, Path: "House/Components/Crawlspace/Label"}
		}
		wall, err := foundationWall(c, st, label, "crawlspace")
		if err != nil {
			return nil, err
		}
		fd := record.New(st.NextID("Foundation"), "Foundation")
		fd.Props["FoundationType/Crawlspace/Vented"] = "true"
		fd.Refs["AttachedToFoundationWall"] = wall.ID
		fd.Meta[metaLabel] = label
		emit(wall, fd)
		logger.Debug("Crawlspace converted.", "label", label, "id", fd.ID)
	}

	for _, s := range comps.Each("Slab") {
		label := s.Child("Label").TextValue()
		if label == "" {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageFoundations, Path: "House/Components/Slab/Label"}
		}
		slab, err := foundationSlab(s, st, label, "Slab")
		if err != nil {
			return nil, err
		}
		fd := record.New(st.NextID("Foundation"), "Foundation")
		fd.Props["FoundationType/SlabOnGrade"] = ""
		fd.Refs["AttachedToSlab"] = slab.ID
		fd.Meta[metaLabel] = label
		emit(slab, fd)
		logger.Debug("Slab converted.", "label", label, "id", fd.ID)
	}

	return out, nil
}

// foundationWall translates the below-grade wall of a basement or
// crawlspace component.
func foundationWall(n *source.Node, st *state.Tracker, label, kind string) (record.Record, error) {
	w := n.Child("Wall")
	height, hok := w.FloatAttr("height")
	if !hok {
		return record.Record{}, &errdefs.MissingRequiredValueError{Stage: stageFoundations, Path: "House/Components/" + kind + "/Wall@height"}
	}
	perimeter, pok := n.Child("Floor").FloatAttr("perimeter")
	if !pok {
		return record.Record{}, &errdefs.MissingRequiredValueError{Stage: stageFoundations, Path: "House/Components/" + kind + "/Floor@perimeter"}
	}

	rec := record.New(st.NextID("FoundationWall"), "FoundationWall")
	rec.Props["Type"] = "solid concrete"
	rec.Props["Height"] = units.String1(units.MToFt(height))
	rec.Props["Area"] = units.String1(units.M2ToFt2(height * perimeter))
	if depth, ok := w.FloatAttr("depth"); ok {
		rec.Props["DepthBelowGrade"] = units.String1(units.MToFt(depth))
	}
	if rsi, ok := w.FloatAttr("rsi"); ok {
		rsi, clamped := units.Clamp(rsi, minAssemblyRSI, maxAssemblyRSI)
		if clamped {
			st.Warn(state.UnitOutOfRange, stageFoundations, "%s %q: wall RSI clamped to %s", kind, label, units.String2(rsi))
		}
		rec.Props["Insulation/AssemblyEffectiveRValue"] = units.String1(units.RSIToR(rsi))
	}
	rec.Meta[metaLabel] = label
	return rec, nil
}

// foundationSlab translates the floor of a basement or a slab-on-grade.
func foundationSlab(n *source.Node, st *state.Tracker, label, kind string) (record.Record, error) {
	floor := n.Child("Floor")
	area, aok := floor.FloatAttr("area")
	if !aok {
		return record.Record{}, &errdefs.MissingRequiredValueError{Stage: stageFoundations, Path: "House/Components/" + kind + "/Floor@area"}
	}

	rec := record.New(st.NextID("Slab"), "Slab")
	rec.Props["Area"] = units.String1(units.M2ToFt2(area))
	rec.Props["Thickness"] = slabThicknessIn
	if perimeter, ok := floor.FloatAttr("perimeter"); ok {
		rec.Props["ExposedPerimeter"] = units.String1(units.MToFt(perimeter))
	}
	if rsi, ok := floor.FloatAttr("rsi"); ok {
		rec.Props["PerimeterInsulation/Layer/NominalRValue"] = units.String1(units.RSIToR(rsi))
	}
	rec.Meta[metaLabel] = label
	return rec, nil
}
