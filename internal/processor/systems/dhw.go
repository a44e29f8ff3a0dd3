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

const stageDHW = "systems.dhw"

// tankTypes maps H2K TankType codes to HPXML water heater types.
var tankTypes = map[string]string{
	"1": "storage water heater",
	"2": "instantaneous water heater",
}

const (
	minEnergyFactor = 0.3
	maxEnergyFactor = 4.0 // heat-pump water heaters exceed 1
)

// HotWater emits one WaterHeatingSystem record for the primary DHW system.
func HotWater(ctx context.Context, doc *source.Document, st *state.Tracker) ([]record.Record, error) {
	logger := ctxlog.FromContext(ctx)
	primary := doc.House().Path("Components", "HotWater", "Primary")
	if primary == nil {
		return nil, nil
	}

	ef, ok := primary.Child("EnergyFactor").FloatAttr("value")
	if !ok {
		return nil, &errdefs.MissingRequiredValueError{Stage: stageDHW, Path: "House/Components/HotWater/Primary/EnergyFactor@value"}
	}
	ef, clamped := units.Clamp(ef, minEnergyFactor, maxEnergyFactor)
	if clamped {
		st.Warn(state.UnitOutOfRange, stageDHW, "water heater energy factor clamped to %s", units.String2(ef))
	}

	code, _ := primary.Path("Equipment", "EnergySource").Attr("code")
	fuel, ok := fuelNames[code]
	if !ok {
		fuel = "electricity"
	}

	typCode, _ := primary.Child("TankType").Attr("code")
	typ, ok := tankTypes[typCode]
	if !ok {
		typ = "storage water heater"
	}

	rec := record.New(st.NextID("WaterHeatingSystem"), "WaterHeatingSystem")
	rec.Props["FuelType"] = fuel
	rec.Props["WaterHeaterType"] = typ
	if vol, ok := primary.Child("TankVolume").FloatAttr("value"); ok {
		rec.Props["TankVolume"] = units.String1(units.LitersToGallons(vol))
	}
	rec.Props["FractionDHWLoadServed"] = "1"
	rec.Props["EnergyFactor"] = units.String2(ef)

	st.Register(rec)
	logger.Debug("Water heating system converted.", "id", rec.ID, "fuel", fuel)
	return []record.Record{rec}, nil
}
