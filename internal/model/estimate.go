package model

import "math"

// SlabEstimate holds the results of a slab purchasing calculation. It is an
// area-based approximation used for quoting before the nesting engine has
// produced an exact layout.
type SlabEstimate struct {
	TotalUnitArea   float64 `json:"total_unit_area"`   // all cut units incl. kerf allowance (sq mm)
	TotalSquareM    float64 `json:"total_square_m"`    // same in square metres
	SlabArea        float64 `json:"slab_area"`         // usable interior of one slab (sq mm)
	SlabsExact      float64 `json:"slabs_exact"`       // fractional slab count
	SlabsMin        int     `json:"slabs_min"`         // ceiling of exact
	SlabsWithWaste  int     `json:"slabs_with_waste"`  // recommended count including waste factor
	WastePercent    float64 `json:"waste_percent"`     // waste factor applied
	EstimatedCost   float64 `json:"estimated_cost"`    // SlabsWithWaste x PricePerSlab
	PricePerSlab    float64 `json:"price_per_slab"`
}

const sqmmPerSquareMetre = 1000000.0

// EstimateSlabs computes how many slabs to buy for a set of cut units.
// Each unit is padded by the kerf on both dimensions, mirroring what the
// nesting engine will reserve. wastePercent adds headroom for layout waste
// (e.g. 15 for 15%).
func EstimateSlabs(units []CutUnit, slab SlabSpec, wastePercent, pricePerSlab float64) SlabEstimate {
	var totalArea float64
	for _, u := range units {
		totalArea += (u.LengthMm + slab.KerfMm) * (u.WidthMm + slab.KerfMm)
	}

	slabArea := slab.InteriorArea()
	if slabArea <= 0 {
		return SlabEstimate{
			TotalUnitArea: totalArea,
			TotalSquareM:  totalArea / sqmmPerSquareMetre,
			WastePercent:  wastePercent,
			PricePerSlab:  pricePerSlab,
		}
	}

	exact := totalArea / slabArea
	minSlabs := int(math.Ceil(exact))

	wasteFactor := 1.0 + wastePercent/100.0
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minSlabs {
		withWaste = minSlabs
	}

	return SlabEstimate{
		TotalUnitArea:  totalArea,
		TotalSquareM:   totalArea / sqmmPerSquareMetre,
		SlabArea:       slabArea,
		SlabsExact:     exact,
		SlabsMin:       minSlabs,
		SlabsWithWaste: withWaste,
		WastePercent:   wastePercent,
		EstimatedCost:  float64(withWaste) * pricePerSlab,
		PricePerSlab:   pricePerSlab,
	}
}
