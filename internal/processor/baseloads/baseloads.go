// Package baseloads translates the H2K baseload summary: appliances,
// lighting, and other electric plug loads. H2K carries these as annual
// energy totals rather than modeled equipment, so each total becomes one
// target record with the consumption inlined.
package baseloads

import (
	"context"

	"github.com/enermodel/h2khpxml/internal/convert/record"
	"github.com/enermodel/h2khpxml/internal/convert/state"
	"github.com/enermodel/h2khpxml/internal/ctxlog"
	"github.com/enermodel/h2khpxml/internal/source"
	"github.com/enermodel/h2khpxml/internal/units"
)

const stage = "baseloads"

// maxAnnualkWh is a sanity ceiling for any single baseload total.
const maxAnnualkWh = 20000

// Process reads House/Baseloads/Summary and emits the appliance, lighting,
// and plug-load records. Every part is optional; a file without a summary
// emits nothing.
func Process(ctx context.Context, doc *source.Document, st *state.Tracker) ([]record.Record, error) {
	logger := ctxlog.FromContext(ctx)
	summary := doc.House().Path("Baseloads", "Summary")
	if summary == nil {
		return nil, nil
	}

	var out []record.Record
	emit := func(rec record.Record) {
		st.Register(rec)
		out = append(out, rec)
	}

	if kwh, ok := annual(summary, st, "refrigerator"); ok {
		rec := record.New(st.NextID("Refrigerator"), "Refrigerator")
		rec.Props["RatedAnnualkWh"] = units.String1(kwh)
		emit(rec)
	}

	if _, ok := summary.Attr("cookingRange"); ok {
		rec := record.New(st.NextID("CookingRange"), "CookingRange")
		rec.Props["FuelType"] = "electricity"
		emit(rec)
	}

	if kwh, ok := annual(summary, st, "lighting"); ok {
		rec := record.New(st.NextID("LightingGroup"), "LightingGroup")
		rec.Props["Location"] = "interior"
		rec.Props["Load/Units"] = "kWh/year"
		rec.Props["Load/Value"] = units.String1(kwh)
		emit(rec)
	}

	if kwh, ok := annual(summary, st, "otherElectric"); ok {
		rec := record.New(st.NextID("PlugLoad"), "PlugLoad")
		rec.Props["PlugLoadType"] = "other"
		rec.Props["Load/Units"] = "kWh/year"
		rec.Props["Load/Value"] = units.String1(kwh)
		emit(rec)
	}

	logger.Debug("Baseloads converted.", "records", len(out))
	return out, nil
}

// annual reads one annual-kWh attribute, clamping negatives to zero and
// implausible totals to the ceiling.
func annual(summary *source.Node, st *state.Tracker, attr string) (float64, bool) {
	kwh, ok := summary.FloatAttr(attr)
	if !ok {
		return 0, false
	}
	clampedVal, clamped := units.Clamp(kwh, 0, maxAnnualkWh)
	if clamped {
		st.Warn(state.UnitOutOfRange, stage, "baseload %q clamped to %s kWh/y", attr, units.String1(clampedVal))
	}
	return clampedVal, true
}
