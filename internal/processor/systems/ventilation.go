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

const stageVentilation = "systems.ventilation"

const (
	minRecoveryEff = 0.3
	maxRecoveryEff = 0.95
)

// Ventilation emits one VentilationFan record per HRV in the whole-house
// ventilator list. H2K exhaust-only fans have no whole-building HPXML
// equivalent and are skipped.
func Ventilation(ctx context.Context, doc *source.Document, st *state.Tracker) ([]record.Record, error) {
	logger := ctxlog.FromContext(ctx)
	list := doc.House().Path("Ventilation", "WholeHouseVentilatorList")
	if list == nil {
		return nil, nil
	}

	var out []record.Record
	for _, hrv := range list.Each("Hrv") {
		flow, ok := hrv.FloatAttr("supplyFlowrate")
		if !ok {
			return nil, &errdefs.MissingRequiredValueError{Stage: stageVentilation, Path: "House/Ventilation/WholeHouseVentilatorList/Hrv@supplyFlowrate"}
		}

		rec := record.New(st.NextID("VentilationFan"), "VentilationFan")
		rec.Props["FanType"] = "heat recovery ventilator"
		rec.Props["RatedFlowRate"] = units.String1(units.LpsToCfm(flow))
		rec.Props["HoursInOperation"] = "24"
		rec.Props["UsedForWholeBuildingVentilation"] = "true"

		if pct, ok := hrv.FloatAttr("efficiency1"); ok {
			sre, clamped := units.Clamp(pct/100, minRecoveryEff, maxRecoveryEff)
			if clamped {
				st.Warn(state.UnitOutOfRange, stageVentilation, "HRV recovery efficiency clamped to %s", units.String2(sre))
			}
			rec.Props["SensibleRecoveryEfficiency"] = units.String2(sre)
		}

		st.Register(rec)
		out = append(out, rec)
		logger.Debug("HRV converted.", "id", rec.ID)
	}
	return out, nil
}
