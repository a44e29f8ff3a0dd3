package enclosure

import (
	"context"
	"testing"

	"github.com/enermodel/h2khpxml/internal/convert/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoundations_BasementDecomposes(t *testing.T) {
	doc := houseDoc(t, `
      <Basement>
        <Label>F1</Label>
        <Wall height="2.4" depth="1.8" rsi="2.1"/>
        <Floor area="80" perimeter="36" rsi="0.5"/>
      </Basement>`)
	st := state.NewTracker()

	recs, err := Foundations(context.Background(), doc, st)
	require.NoError(t, err)
	require.Len(t, recs, 3, "one basement becomes wall + slab + foundation")

	wall, slab, fd := recs[0], recs[1], recs[2]

	assert.Equal(t, "FoundationWall_1", wall.ID)
	assert.Equal(t, "solid concrete", wall.Props["Type"])
	assert.Equal(t, "7.9", wall.Props["Height"])
	assert.Equal(t, "5.9", wall.Props["DepthBelowGrade"])
	assert.Equal(t, "930", wall.Props["Area"])
	assert.Equal(t, "11.9", wall.Props["Insulation/AssemblyEffectiveRValue"])

	assert.Equal(t, "Slab_1", slab.ID)
	assert.Equal(t, "861.1", slab.Props["Area"])
	assert.Equal(t, "118.1", slab.Props["ExposedPerimeter"])

	assert.Equal(t, "Foundation_1", fd.ID)
	assert.Equal(t, "true", fd.Props["FoundationType/Basement/Conditioned"])
	assert.Equal(t, "FoundationWall_1", fd.Refs["AttachedToFoundationWall"])
	assert.Equal(t, "Slab_1", fd.Refs["AttachedToSlab"])
}

func TestFoundations_SlabOnGrade(t *testing.T) {
	doc := houseDoc(t, `
      <Slab>
        <Label>S1</Label>
        <Floor area="100" perimeter="40"/>
      </Slab>`)
	st := state.NewTracker()

	recs, err := Foundations(context.Background(), doc, st)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	fd := recs[1]
	assert.Equal(t, "", fd.Props["FoundationType/SlabOnGrade"])
	assert.Equal(t, "Slab_1", fd.Refs["AttachedToSlab"])
	_, hasWallRef := fd.Refs["AttachedToFoundationWall"]
	assert.False(t, hasWallRef)
}

func TestCeilings_AtticBoundary(t *testing.T) {
	doc := houseDoc(t, `
      <Ceiling>
        <Label>C1</Label>
        <Construction><CeilingType>Attic</CeilingType><Type rValue="7.0"/></Construction>
        <Measurements area="95"/>
      </Ceiling>
      <Ceiling>
        <Label>C2</Label>
        <Construction><CeilingType>Cathedral</CeilingType><Type rValue="5.0"/></Construction>
        <Measurements area="20"/>
      </Ceiling>`)
	st := state.NewTracker()

	recs, err := Ceilings(context.Background(), doc, st)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "attic - vented", recs[0].Props["InteriorAdjacentTo"])
	assert.Equal(t, "39.7", recs[0].Props["Insulation/AssemblyEffectiveRValue"])
	assert.Equal(t, "conditioned space", recs[1].Props["InteriorAdjacentTo"])
}

func TestDoors_AttachAndConvert(t *testing.T) {
	doc := houseDoc(t, wallXML("W1", "1")+`
      <Door>
        <Label>D1</Label>
        <ParentWall>W1</ParentWall>
        <Construction><Type rValue="1.1"/></Construction>
        <Measurements height="2.03" width="0.86"/>
      </Door>`)
	st := state.NewTracker()
	_, err := Walls(context.Background(), doc, st)
	require.NoError(t, err)

	recs, err := Doors(context.Background(), doc, st)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	door := recs[0]
	assert.Equal(t, "Door_1", door.ID)
	assert.Equal(t, "Wall_1", door.Refs["AttachedToWall"])
	assert.Equal(t, "18.8", door.Props["Area"])
	assert.Equal(t, "6.2", door.Props["RValue"])
	assert.Equal(t, "0", door.Props["Azimuth"])
	assert.Empty(t, st.Warnings())
}
