package engine

import (
	"strings"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// Aggregate turns raw placements into the optimization result consumed by
// exports and the UI layer: per-slab area bookkeeping, the flattened
// placement list grouped so each parent's mains come before its strips, and
// the lamination summary.
//
// The units slice defines ordering: parents appear in first-appearance order
// and within a parent the unit generation order is kept, so the result is
// stable across runs.
func Aggregate(units []model.CutUnit, placements []model.Placement, slab model.SlabSpec) *model.OptimizationResult {
	byUnit := make(map[string]model.Placement, len(placements))
	slabCount := 0
	for _, pl := range placements {
		byUnit[pl.Unit.ID] = pl
		if pl.SlabIndex+1 > slabCount {
			slabCount = pl.SlabIndex + 1
		}
	}

	slabs := make([]model.Slab, slabCount)
	for i := range slabs {
		slabs[i].Index = i
	}

	// Flattened placements: parents in first-appearance order, mains before
	// strips within each parent.
	parentOrder := make([]string, 0, len(units))
	mainsByParent := make(map[string][]model.Placement)
	stripsByParent := make(map[string][]model.Placement)
	parentLabels := make(map[string]string)
	for _, u := range units {
		pl, ok := byUnit[u.ID]
		if !ok {
			continue
		}
		pid := u.ParentPieceID
		if _, seen := parentLabels[pid]; !seen {
			parentOrder = append(parentOrder, pid)
			parentLabels[pid] = u.ParentLabel
		}
		if u.Kind == model.UnitLaminationStrip {
			stripsByParent[pid] = append(stripsByParent[pid], pl)
		} else {
			mainsByParent[pid] = append(mainsByParent[pid], pl)
		}
	}

	result := &model.OptimizationResult{
		Slabs:       slabs,
		Placements:  make([]model.Placement, 0, len(placements)),
		TotalSlabs:  slabCount,
		TotalPieces: len(parentOrder),
	}

	var lam model.LaminationSummary
	for _, pid := range parentOrder {
		result.Placements = append(result.Placements, mainsByParent[pid]...)
		result.Placements = append(result.Placements, stripsByParent[pid]...)

		strips := stripsByParent[pid]
		if len(strips) == 0 {
			continue
		}
		group := model.ParentStrips{
			ParentPieceID: pid,
			ParentLabel:   parentLabels[pid],
		}
		for _, pl := range strips {
			group.Strips = append(group.Strips, model.StripDetail{
				CutUnitID: pl.Unit.ID,
				Edge:      stripEdge(pl.Unit),
				SlabIndex: pl.SlabIndex,
				X:         pl.X,
				Y:         pl.Y,
				LengthMm:  pl.Unit.LengthMm,
				WidthMm:   pl.Unit.WidthMm,
				Rotated:   pl.Rotated,
			})
			lam.TotalStrips++
			lam.TotalStripArea += pl.Unit.Area()
		}
		lam.StripsByParent = append(lam.StripsByParent, group)
	}
	result.Lamination = lam

	for _, pl := range result.Placements {
		s := &result.Slabs[pl.SlabIndex]
		s.Placements = append(s.Placements, pl)
		s.UsedArea += pl.Unit.Area()
	}
	interior := slab.InteriorArea()
	for i := range result.Slabs {
		s := &result.Slabs[i]
		s.WasteArea = interior - s.UsedArea
		if interior > 0 {
			s.WastePercent = s.WasteArea / interior * 100
		}
		result.TotalUsedArea += s.UsedArea
		result.TotalWasteArea += s.WasteArea
	}
	if total := interior * float64(slabCount); total > 0 {
		result.WastePercent = result.TotalWasteArea / total * 100
	}

	return result
}

// stripEdge recovers the edge side from a strip unit's id, which is the
// parent piece id followed by the side and an optional join suffix, e.g.
// "a1b2c3d4-front" or "a1b2c3d4-front-j0".
func stripEdge(u model.CutUnit) string {
	id := strings.TrimPrefix(u.ID, u.ParentPieceID+"-")
	if i := strings.Index(id, "-j"); i >= 0 {
		id = id[:i]
	}
	return id
}
