package testutil

// Source-document fixtures shared across test packages. ValidHouse carries
// one of everything so end-to-end tests exercise every processor family.
const ValidHouse = `<?xml version="1.0"?>
<HouseFile>
  <ProgramInformation>
    <Application name="HOT2000" version="11.9"/>
    <File id="CASE-0001"/>
    <Weather><Location code="5010">OTTAWA</Location></Weather>
  </ProgramInformation>
  <House>
    <Specifications yearBuilt="1987" storeys="2">
      <HeatedFloorArea aboveGrade="120" belowGrade="80"/>
    </Specifications>
    <Components>
      <Wall>
        <Label>W1</Label>
        <Construction><Type rValue="3.5"/></Construction>
        <Measurements height="2.5" perimeter="12"/>
        <FacingDirection code="1">North</FacingDirection>
      </Wall>
      <Wall>
        <Label>W2</Label>
        <Construction>
          <Layers>
            <Layer rsi="0.5"/>
            <Layer rsi="2.1"/>
            <Layer rsi="0.4"/>
          </Layers>
        </Construction>
        <Measurements height="2.5" perimeter="10"/>
        <FacingDirection code="5">South</FacingDirection>
      </Wall>
      <Window>
        <Label>Win1</Label>
        <ParentWall>W1</ParentWall>
        <Construction><Type uValue="1.8" shgc="0.52"/></Construction>
        <Measurements height="1200" width="900"/>
      </Window>
      <Door>
        <Label>D1</Label>
        <ParentWall>W2</ParentWall>
        <Construction><Type rValue="1.1"/></Construction>
        <Measurements height="2.03" width="0.86"/>
      </Door>
      <Ceiling>
        <Label>C1</Label>
        <Construction>
          <CeilingType>Attic</CeilingType>
          <Type rValue="7.0"/>
        </Construction>
        <Measurements area="95"/>
      </Ceiling>
      <Basement>
        <Label>F1</Label>
        <Wall height="2.4" depth="1.8" rsi="2.1"/>
        <Floor area="80" perimeter="36" rsi="0.5"/>
      </Basement>
      <HotWater>
        <Primary>
          <Equipment><EnergySource code="1"/></Equipment>
          <TankType code="1"/>
          <TankVolume value="180"/>
          <EnergyFactor value="0.92"/>
        </Primary>
      </HotWater>
    </Components>
    <HeatingCooling>
      <Type1>
        <Furnace>
          <Equipment><EnergySource code="2"/></Equipment>
          <Specifications efficiency="95">
            <OutputCapacity value="20"/>
          </Specifications>
        </Furnace>
      </Type1>
      <Type2>
        <AirConditioning>
          <Specifications>
            <RatedCapacity value="7" cop="3.8"/>
          </Specifications>
        </AirConditioning>
      </Type2>
    </HeatingCooling>
    <Ventilation>
      <WholeHouseVentilatorList>
        <Hrv supplyFlowrate="60" efficiency1="75"/>
      </WholeHouseVentilatorList>
    </Ventilation>
    <Baseloads>
      <Summary refrigerator="639" cookingRange="565" lighting="1080" otherElectric="2000"/>
    </Baseloads>
  </House>
</HouseFile>
`
