package model

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant left on a slab after
// cutting. Stone offcuts are worth tracking: a large remnant can carry a
// splashback or a vanity top on a later job.
type Offcut struct {
	ID           string  `json:"id"`
	SlabIndex    int     `json:"slab_index"`
	X            float64 `json:"x"` // interior-relative, like placements
	Y            float64 `json:"y"`
	LengthMm     float64 `json:"length_mm"`
	WidthMm      float64 `json:"width_mm"`
	PricePerSlab float64 `json:"price_per_slab,omitempty"` // inherited proportional value
}

// Area returns the offcut area in square mm.
func (o Offcut) Area() float64 {
	return o.LengthMm * o.WidthMm
}

// MinOffcutDimension is the minimum length or width (in mm) for a remnant to
// be worth keeping. Anything narrower is treated as waste.
const MinOffcutDimension = 200.0

// MinOffcutArea is the minimum area (in sq mm) for a usable remnant.
const MinOffcutArea = 120000.0 // roughly a 400x300 vanity cutting

// DetectOffcuts identifies remnant rectangles on one slab by looking at the
// strip to the right of and below the placed pieces' bounding box.
func DetectOffcuts(slab Slab, spec SlabSpec, pricePerSlab float64) []Offcut {
	interiorL := spec.UsableLength()
	interiorW := spec.UsableWidth()

	if len(slab.Placements) == 0 {
		return []Offcut{{
			ID:           uuid.New().String()[:8],
			SlabIndex:    slab.Index,
			LengthMm:     interiorL,
			WidthMm:      interiorW,
			PricePerSlab: pricePerSlab,
		}}
	}

	var maxRight, maxBottom float64
	for _, p := range slab.Placements {
		right := p.X + p.PlacedWidth() + spec.KerfMm
		bottom := p.Y + p.PlacedHeight() + spec.KerfMm
		if right > maxRight {
			maxRight = right
		}
		if bottom > maxBottom {
			maxBottom = bottom
		}
	}

	var offcuts []Offcut

	rightStrip := interiorL - maxRight
	if rightStrip >= MinOffcutDimension && interiorW >= MinOffcutDimension && rightStrip*interiorW >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:        uuid.New().String()[:8],
			SlabIndex: slab.Index,
			X:         maxRight,
			Y:         0,
			LengthMm:  rightStrip,
			WidthMm:   interiorW,
		})
	}

	// Bottom strip stops at the pieces' right edge so it never overlaps the
	// right strip.
	bottomStrip := interiorW - maxBottom
	bottomLen := math.Min(maxRight, interiorL)
	if bottomStrip >= MinOffcutDimension && bottomLen >= MinOffcutDimension && bottomStrip*bottomLen >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:        uuid.New().String()[:8],
			SlabIndex: slab.Index,
			X:         0,
			Y:         maxBottom,
			LengthMm:  bottomLen,
			WidthMm:   bottomStrip,
		})
	}

	if pricePerSlab > 0 {
		slabArea := spec.LengthMm * spec.WidthMm
		for i := range offcuts {
			offcuts[i].PricePerSlab = offcuts[i].Area() / slabArea * pricePerSlab
		}
	}

	sort.Slice(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// DetectAllOffcuts finds offcuts across every slab of a result.
func DetectAllOffcuts(result *OptimizationResult, spec SlabSpec, pricePerSlab float64) []Offcut {
	var all []Offcut
	for _, slab := range result.Slabs {
		all = append(all, DetectOffcuts(slab, spec, pricePerSlab)...)
	}
	return all
}

// TotalOffcutArea returns the combined area of the given offcuts.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
