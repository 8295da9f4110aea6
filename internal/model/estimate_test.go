package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateSlabs(t *testing.T) {
	slab := SlabSpec{LengthMm: 3200, WidthMm: 1600, KerfMm: 0, TrimMarginMm: 0}
	units := []CutUnit{
		{LengthMm: 3200, WidthMm: 800},
		{LengthMm: 3200, WidthMm: 800},
	}

	est := EstimateSlabs(units, slab, 0, 850)

	assert.InDelta(t, 1.0, est.SlabsExact, 1e-9)
	assert.Equal(t, 1, est.SlabsMin)
	assert.Equal(t, 1, est.SlabsWithWaste)
	assert.InDelta(t, 5.12, est.TotalSquareM, 1e-9)
	assert.Equal(t, 850.0, est.EstimatedCost)
}

func TestEstimateSlabsWasteFactor(t *testing.T) {
	slab := SlabSpec{LengthMm: 3200, WidthMm: 1600}
	units := []CutUnit{
		{LengthMm: 3000, WidthMm: 1500},
		{LengthMm: 3000, WidthMm: 1500},
	}

	noWaste := EstimateSlabs(units, slab, 0, 0)
	withWaste := EstimateSlabs(units, slab, 20, 0)

	assert.Equal(t, 2, noWaste.SlabsWithWaste)
	require.GreaterOrEqual(t, withWaste.SlabsWithWaste, noWaste.SlabsWithWaste)
	assert.Equal(t, 3, withWaste.SlabsWithWaste)
}

func TestEstimateSlabsKerfPadding(t *testing.T) {
	slab := SlabSpec{LengthMm: 3200, WidthMm: 1600, KerfMm: 8}
	units := []CutUnit{{LengthMm: 1000, WidthMm: 500}}

	est := EstimateSlabs(units, slab, 0, 0)

	assert.Equal(t, 1008.0*508.0, est.TotalUnitArea)
}

func TestDetectOffcutsEmptySlab(t *testing.T) {
	spec := SlabSpec{LengthMm: 3200, WidthMm: 1600, TrimMarginMm: 20}
	offcuts := DetectOffcuts(Slab{Index: 0}, spec, 0)

	require.Len(t, offcuts, 1)
	assert.Equal(t, spec.UsableLength(), offcuts[0].LengthMm)
	assert.Equal(t, spec.UsableWidth(), offcuts[0].WidthMm)
}

func TestDetectOffcutsRightAndBottomStrips(t *testing.T) {
	spec := SlabSpec{LengthMm: 3200, WidthMm: 1600, KerfMm: 0, TrimMarginMm: 0}
	slab := Slab{
		Index: 0,
		Placements: []Placement{
			{Unit: CutUnit{LengthMm: 2000, WidthMm: 1000}, X: 0, Y: 0},
		},
	}

	offcuts := DetectOffcuts(slab, spec, 1000)
	require.Len(t, offcuts, 2)

	// Sorted largest first: right strip 1200x1600, bottom strip 2000x600
	assert.Equal(t, 1200.0, offcuts[0].LengthMm)
	assert.Equal(t, 1600.0, offcuts[0].WidthMm)
	assert.Equal(t, 2000.0, offcuts[1].LengthMm)
	assert.Equal(t, 600.0, offcuts[1].WidthMm)

	// Proportional value
	slabArea := spec.LengthMm * spec.WidthMm
	assert.InDelta(t, offcuts[0].Area()/slabArea*1000, offcuts[0].PricePerSlab, 1e-9)
}

func TestDetectOffcutsDiscardsSlivers(t *testing.T) {
	spec := SlabSpec{LengthMm: 3200, WidthMm: 1600, KerfMm: 0, TrimMarginMm: 0}
	slab := Slab{
		Index: 0,
		Placements: []Placement{
			{Unit: CutUnit{LengthMm: 3100, WidthMm: 1550}, X: 0, Y: 0},
		},
	}

	// Remaining strips are 100mm and 50mm, below the keep threshold
	offcuts := DetectOffcuts(slab, spec, 0)
	assert.Empty(t, offcuts)
}

func TestTotalOffcutArea(t *testing.T) {
	offcuts := []Offcut{
		{LengthMm: 1000, WidthMm: 500},
		{LengthMm: 400, WidthMm: 300},
	}
	assert.Equal(t, 620000.0, TotalOffcutArea(offcuts))
}
