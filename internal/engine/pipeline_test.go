package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

func TestOptimizeEndToEnd(t *testing.T) {
	bench := model.NewPiece("Bench", 2400, 600, 20)
	bench.Edges[model.EdgeFront] = model.EdgeFinish{Laminated: true}

	island := model.NewPiece("Island", 1800, 900, 20)

	result, err := Optimize([]model.Piece{bench, island}, model.DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalPieces)
	assert.GreaterOrEqual(t, result.TotalSlabs, 1)
	// Two mains plus one strip
	assert.Len(t, result.Placements, 3)
	assert.Equal(t, 1, result.Lamination.TotalStrips)
	assert.Equal(t, 2400.0*108, result.Lamination.TotalStripArea)
}

func TestOptimizeSplitsOversizePiece(t *testing.T) {
	long := model.NewPiece("Long Run", 4000, 600, 20)

	result, err := Optimize([]model.Piece{long}, model.DefaultSettings())
	require.NoError(t, err)

	assert.Len(t, result.Placements, 2)
	assert.Equal(t, 1, result.JoinCount(long.ID))
	assert.Equal(t, JoinLeft, result.Placements[0].Unit.JoinPosition)
	assert.Equal(t, JoinRight, result.Placements[1].Unit.JoinPosition)
}

func TestOptimizeSplitsOversizeStrip(t *testing.T) {
	// A 4000mm run is split for the join, and its laminated front strip is
	// split the same way so no unit reaching the packer is oversize.
	long := model.NewPiece("Long Run", 4000, 600, 20)
	long.Edges[model.EdgeFront] = model.EdgeFinish{Laminated: true}

	settings := model.DefaultSettings()
	units, err := PrepareUnits([]model.Piece{long}, settings)
	require.NoError(t, err)

	maxLong := settings.Slab.UsableLength() - settings.Slab.KerfMm
	stripSegments := 0
	for _, u := range units {
		assert.LessOrEqual(t, u.LengthMm, maxLong)
		if u.Kind == model.UnitLaminationStrip {
			stripSegments++
		}
	}
	assert.Equal(t, 2, stripSegments)
}

func TestOptimizeGrainMatchedWidePiece(t *testing.T) {
	// 1580mm fits the usable length but not the usable width. Grain match
	// forbids the rotation that would make it fit, so the piece is joined
	// across its width instead of failing in the packer.
	island := model.NewPiece("Wide Island", 1400, 1580, 20)
	island.GrainMatch = true

	result, err := Optimize([]model.Piece{island}, model.DefaultSettings())
	require.NoError(t, err)

	require.Len(t, result.Placements, 2)
	assert.Equal(t, 1, result.JoinCount(island.ID))
	for _, pl := range result.Placements {
		assert.False(t, pl.Rotated)
		assert.Equal(t, 1400.0, pl.Unit.LengthMm)
		assert.Equal(t, 790.0, pl.Unit.WidthMm)
	}
}

func TestOptimizeGrainMatchedLongRun(t *testing.T) {
	// Grain-locked 600x4000: the 4000mm dimension is pinned to the slab
	// width, so the split must honor the 1552mm width limit.
	run := model.NewPiece("Run", 600, 4000, 20)
	run.GrainMatch = true

	result, err := Optimize([]model.Piece{run}, model.DefaultSettings())
	require.NoError(t, err)

	require.Len(t, result.Placements, 3)
	for _, pl := range result.Placements {
		assert.False(t, pl.Rotated)
		assert.LessOrEqual(t, pl.Unit.WidthMm, 1552.0)
	}
}

func TestOptimizeFractionalKerf(t *testing.T) {
	// With kerf 7.5 the split limit is 3152.5mm; a whole-mm distribution of
	// a 6305mm run would round a segment up past the limit, so the resolver
	// divides it exactly and both segments still nest.
	long := model.NewPiece("Long Run", 6305, 600, 20)

	settings := model.DefaultSettings()
	settings.Slab.KerfMm = 7.5

	result, err := Optimize([]model.Piece{long}, settings)
	require.NoError(t, err)

	require.Len(t, result.Placements, 2)
	assert.Equal(t, 3152.5, result.Placements[0].Unit.LengthMm)
	assert.Equal(t, 3152.5, result.Placements[1].Unit.LengthMm)
}

func TestOptimizeInvalidSlab(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Slab.LengthMm = 0

	_, err := Optimize([]model.Piece{model.NewPiece("A", 100, 100, 20)}, settings)
	assert.Error(t, err)
}

func TestOptimizeUnknownStrategy(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Strategy = "annealing"

	_, err := Optimize([]model.Piece{model.NewPiece("A", 100, 100, 20)}, settings)
	assert.Error(t, err)
}

func TestOptimizeDeterministic(t *testing.T) {
	a := model.NewPiece("A", 2400, 600, 20)
	a.Edges[model.EdgeFront] = model.EdgeFinish{Laminated: true}
	b := model.NewPiece("B", 1800, 700, 20)
	pieces := []model.Piece{a, b}

	first, err := Optimize(pieces, model.DefaultSettings())
	require.NoError(t, err)
	second, err := Optimize(pieces, model.DefaultSettings())
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestResultCacheHit(t *testing.T) {
	cache, err := NewResultCache(8)
	require.NoError(t, err)

	pieces := []model.Piece{model.NewPiece("A", 2400, 600, 20)}
	settings := model.DefaultSettings()

	first, err := cache.Optimize(pieces, settings)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	second, err := cache.Optimize(pieces, settings)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestResultCacheKeyChangesWithInput(t *testing.T) {
	pieces := []model.Piece{model.NewPiece("A", 2400, 600, 20)}
	settings := model.DefaultSettings()

	base, err := Key(pieces, settings)
	require.NoError(t, err)

	changed := settings
	changed.Slab.KerfMm = 4
	kerfKey, err := Key(pieces, changed)
	require.NoError(t, err)
	assert.NotEqual(t, base, kerfKey)

	resized := []model.Piece{model.NewPiece("A", 2400, 600, 20)}
	resized[0].ID = pieces[0].ID
	resized[0].WidthMm = 700
	sizeKey, err := Key(resized, settings)
	require.NoError(t, err)
	assert.NotEqual(t, base, sizeKey)

	same, err := Key(pieces, settings)
	require.NoError(t, err)
	assert.Equal(t, base, same)
}

func TestResultCachePurge(t *testing.T) {
	cache, err := NewResultCache(8)
	require.NoError(t, err)

	pieces := []model.Piece{model.NewPiece("A", 2400, 600, 20)}
	_, err = cache.Optimize(pieces, model.DefaultSettings())
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}
