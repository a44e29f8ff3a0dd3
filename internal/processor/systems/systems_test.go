package systems

import (
	"context"
	"fmt"
	"testing"

	"github.com/enermodel/h2khpxml/internal/convert/errdefs"
	"github.com/enermodel/h2khpxml/internal/convert/state"
	"github.com/enermodel/h2khpxml/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func houseDoc(t *testing.T, body string) *source.Document {
	t.Helper()
	doc, err := source.ParseString(fmt.Sprintf(`<HouseFile>
  <ProgramInformation><File id="TEST"/></ProgramInformation>
  <House>%s</House>
</HouseFile>`, body))
	require.NoError(t, err)
	return doc
}

func TestHeating_Furnace(t *testing.T) {
	doc := houseDoc(t, `
    <HeatingCooling><Type1>
      <Furnace>
        <Equipment><EnergySource code="2"/></Equipment>
        <Specifications efficiency="95"><OutputCapacity value="20"/></Specifications>
      </Furnace>
    </Type1></HeatingCooling>`)
	st := state.NewTracker()

	recs, err := Heating(context.Background(), doc, st)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "HeatingSystem_1", rec.ID)
	assert.Equal(t, "", rec.Props["HeatingSystemType/Furnace"])
	assert.Equal(t, "natural gas", rec.Props["HeatingSystemFuel"])
	assert.Equal(t, "68242.8", rec.Props["HeatingCapacity"])
	assert.Equal(t, "AFUE", rec.Props["AnnualHeatingEfficiency/Units"])
	assert.Equal(t, "0.95", rec.Props["AnnualHeatingEfficiency/Value"])
	assert.Equal(t, "1", rec.Props["FractionHeatLoadServed"])
}

func TestHeating_BaseboardsAreElectricResistance(t *testing.T) {
	doc := houseDoc(t, `
    <HeatingCooling><Type1>
      <Baseboards>
        <Specifications><OutputCapacity value="12"/></Specifications>
      </Baseboards>
    </Type1></HeatingCooling>`)
	st := state.NewTracker()

	recs, err := Heating(context.Background(), doc, st)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "", rec.Props["HeatingSystemType/ElectricResistance"])
	assert.Equal(t, "electricity", rec.Props["HeatingSystemFuel"])
	assert.Equal(t, "Percent", rec.Props["AnnualHeatingEfficiency/Units"])
	assert.Equal(t, "1", rec.Props["AnnualHeatingEfficiency/Value"])
}

func TestHeating_MissingEfficiencyDefaultsWithWarning(t *testing.T) {
	doc := houseDoc(t, `
    <HeatingCooling><Type1>
      <Furnace>
        <Equipment><EnergySource code="2"/></Equipment>
        <Specifications><OutputCapacity value="20"/></Specifications>
      </Furnace>
    </Type1></HeatingCooling>`)
	st := state.NewTracker()

	recs, err := Heating(context.Background(), doc, st)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "0.8", recs[0].Props["AnnualHeatingEfficiency/Value"])

	require.Len(t, st.Warnings(), 1)
	assert.Equal(t, state.DefaultApplied, st.Warnings()[0].Code)
}

func TestHeating_MissingCapacityIsFatal(t *testing.T) {
	doc := houseDoc(t, `
    <HeatingCooling><Type1>
      <Furnace><Specifications efficiency="95"/></Furnace>
    </Type1></HeatingCooling>`)

	_, err := Heating(context.Background(), doc, state.NewTracker())
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrMissingRequired)
}

func TestHeating_AbsentSystemEmitsNothing(t *testing.T) {
	recs, err := Heating(context.Background(), houseDoc(t, `<Components/>`), state.NewTracker())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCooling_AirConditioner(t *testing.T) {
	doc := houseDoc(t, `
    <HeatingCooling><Type2>
      <AirConditioning>
        <Specifications><RatedCapacity value="7" cop="3.8"/></Specifications>
      </AirConditioning>
    </Type2></HeatingCooling>`)
	st := state.NewTracker()

	recs, err := Cooling(context.Background(), doc, st)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "central air conditioner", rec.Props["CoolingSystemType"])
	assert.Equal(t, "23885", rec.Props["CoolingCapacity"])
	assert.Equal(t, "SEER", rec.Props["AnnualCoolingEfficiency/Units"])
	assert.Equal(t, "13", rec.Props["AnnualCoolingEfficiency/Value"])
	assert.Empty(t, st.Warnings())
}

func TestCooling_ImplausibleCOPClamps(t *testing.T) {
	doc := houseDoc(t, `
    <HeatingCooling><Type2>
      <AirConditioning>
        <Specifications><RatedCapacity value="7" cop="15"/></Specifications>
      </AirConditioning>
    </Type2></HeatingCooling>`)
	st := state.NewTracker()

	recs, err := Cooling(context.Background(), doc, st)
	require.NoError(t, err)
	assert.Equal(t, "30", recs[0].Props["AnnualCoolingEfficiency/Value"])
	require.Len(t, st.Warnings(), 1)
	assert.Equal(t, state.UnitOutOfRange, st.Warnings()[0].Code)
}

func TestVentilation_HRV(t *testing.T) {
	doc := houseDoc(t, `
    <Ventilation><WholeHouseVentilatorList>
      <Hrv supplyFlowrate="60" efficiency1="75"/>
    </WholeHouseVentilatorList></Ventilation>`)
	st := state.NewTracker()

	recs, err := Ventilation(context.Background(), doc, st)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "heat recovery ventilator", rec.Props["FanType"])
	assert.Equal(t, "127.1", rec.Props["RatedFlowRate"])
	assert.Equal(t, "24", rec.Props["HoursInOperation"])
	assert.Equal(t, "true", rec.Props["UsedForWholeBuildingVentilation"])
	assert.Equal(t, "0.75", rec.Props["SensibleRecoveryEfficiency"])
}

func TestHotWater_Primary(t *testing.T) {
	doc := houseDoc(t, `
    <Components><HotWater>
      <Primary>
        <Equipment><EnergySource code="1"/></Equipment>
        <TankType code="1"/>
        <TankVolume value="180"/>
        <EnergyFactor value="0.92"/>
      </Primary>
    </HotWater></Components>`)
	st := state.NewTracker()

	recs, err := HotWater(context.Background(), doc, st)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "WaterHeatingSystem_1", rec.ID)
	assert.Equal(t, "electricity", rec.Props["FuelType"])
	assert.Equal(t, "storage water heater", rec.Props["WaterHeaterType"])
	assert.Equal(t, "47.6", rec.Props["TankVolume"])
	assert.Equal(t, "0.92", rec.Props["EnergyFactor"])
}

func TestHotWater_MissingEnergyFactorIsFatal(t *testing.T) {
	doc := houseDoc(t, `
    <Components><HotWater><Primary>
      <Equipment><EnergySource code="1"/></Equipment>
    </Primary></HotWater></Components>`)

	_, err := HotWater(context.Background(), doc, state.NewTracker())
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrMissingRequired)
}
