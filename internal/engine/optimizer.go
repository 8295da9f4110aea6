package engine

import (
	"fmt"
	"sort"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// dimensional comparisons tolerate float noise at the sub-micron level
const epsilon = 1e-6

// UnplaceableError reports a cut unit the packer could not place on any slab,
// including a freshly opened one. Because the oversize resolver guarantees
// every unit fits a slab on its own, this always signals an upstream defect;
// a silently dropped unit would be a missing piece on the factory floor.
type UnplaceableError struct {
	UnitID string
	Label  string
}

func (e *UnplaceableError) Error() string {
	return fmt.Sprintf("cut unit %s (%q) cannot be placed on an empty slab", e.UnitID, e.Label)
}

// Strategy is a packing heuristic. Implementations must be deterministic:
// identical units (including order) and slab parameters always produce
// identical placements. The packing problem is NP-hard, so strategies are
// heuristics; optimality is not part of the contract.
type Strategy interface {
	Name() string
	Pack(units []model.CutUnit, slab model.SlabSpec) ([]model.Placement, error)
}

// StrategyFor returns the strategy registered under the given name, falling
// back to the guillotine default for an empty name.
func StrategyFor(name string) (Strategy, error) {
	switch name {
	case "", model.StrategyGuillotine:
		return GuillotineStrategy{}, nil
	case model.StrategyGenetic:
		return GeneticStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown nesting strategy %q", name)
	}
}

// GuillotineStrategy is the default heuristic: best-area-fit placement over
// per-slab free rectangle lists, with guillotine splitting of the consumed
// rectangle. Units are placed largest-area first; each unit goes into the
// free rectangle (across all open slabs, in slab-opening order) that leaves
// the least area after placement, ties broken by least leftover width.
type GuillotineStrategy struct{}

func (GuillotineStrategy) Name() string { return model.StrategyGuillotine }

func (GuillotineStrategy) Pack(units []model.CutUnit, slab model.SlabSpec) ([]model.Placement, error) {
	order := packOrder(units)

	packer := newSlabPacker(slab)
	placements := make([]model.Placement, 0, len(units))
	for _, idx := range order {
		pl, err := packer.place(units[idx])
		if err != nil {
			return nil, err
		}
		placements = append(placements, pl)
	}
	return placements, nil
}

// packOrder returns unit indices sorted by decreasing area, ties broken by
// decreasing length and then by original input order. Placing large pieces
// first reduces fragmentation; the final tie key keeps the sort stable.
func packOrder(units []model.CutUnit) []int {
	order := make([]int, len(units))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ua, ub := units[order[a]], units[order[b]]
		if ua.Area() != ub.Area() {
			return ua.Area() > ub.Area()
		}
		if ua.LengthMm != ub.LengthMm {
			return ua.LengthMm > ub.LengthMm
		}
		return order[a] < order[b]
	})
	return order
}

// freeRect is an empty region of a slab interior, interior-relative.
type freeRect struct {
	x, y, w, h float64
}

// slabPacker maintains the free rectangle lists of all open slabs.
type slabPacker struct {
	spec  model.SlabSpec
	slabs [][]freeRect // free rectangles per open slab, in opening order
}

func newSlabPacker(spec model.SlabSpec) *slabPacker {
	return &slabPacker{spec: spec}
}

// candidate identifies one feasible placement choice during scanning.
type candidate struct {
	slabIdx      int
	rectIdx      int
	rotated      bool
	leftoverArea float64
	leftoverW    float64
}

// better reports whether c beats best under the fit-scoring rules: least
// leftover area, then least leftover width. Scanning order (slab, rect,
// unrotated before rotated) settles any remaining ties because only strict
// improvements replace the incumbent.
func (c candidate) better(best *candidate) bool {
	if best == nil {
		return true
	}
	if c.leftoverArea != best.leftoverArea {
		return c.leftoverArea < best.leftoverArea
	}
	return c.leftoverW < best.leftoverW
}

// place puts one unit onto the best-fitting free rectangle, opening a new
// slab when nothing fits. The unit's dimensions are inflated by the kerf for
// fitting and splitting; the recorded placement keeps the true dimensions.
func (p *slabPacker) place(u model.CutUnit) (model.Placement, error) {
	best := p.findBest(u, 0)
	if best == nil {
		p.slabs = append(p.slabs, []freeRect{{
			x: 0, y: 0,
			w: p.spec.UsableLength(),
			h: p.spec.UsableWidth(),
		}})
		best = p.findBest(u, len(p.slabs)-1)
		if best == nil {
			return model.Placement{}, &UnplaceableError{UnitID: u.ID, Label: u.Label}
		}
	}

	rect := p.slabs[best.slabIdx][best.rectIdx]
	uw, uh := u.LengthMm+p.spec.KerfMm, u.WidthMm+p.spec.KerfMm
	if best.rotated {
		uw, uh = uh, uw
	}
	p.split(best.slabIdx, best.rectIdx, uw, uh)

	return model.Placement{
		Unit:      u,
		SlabIndex: best.slabIdx,
		X:         rect.x,
		Y:         rect.y,
		Rotated:   best.rotated,
	}, nil
}

// placeOriented is place with an orientation preference: the preferred
// orientation is tried across all open slabs first, then the other one, then
// a fresh slab. The genetic strategy uses it to honor rotation genes.
func (p *slabPacker) placeOriented(u model.CutUnit, preferRotated bool) (model.Placement, error) {
	if preferRotated && !u.Rotatable {
		preferRotated = false
	}

	best := p.findBestOriented(u, 0, preferRotated)
	if best == nil && u.Rotatable {
		best = p.findBestOriented(u, 0, !preferRotated)
	}
	if best == nil {
		p.slabs = append(p.slabs, []freeRect{{
			x: 0, y: 0,
			w: p.spec.UsableLength(),
			h: p.spec.UsableWidth(),
		}})
		best = p.findBestOriented(u, len(p.slabs)-1, preferRotated)
		if best == nil && u.Rotatable {
			best = p.findBestOriented(u, len(p.slabs)-1, !preferRotated)
		}
		if best == nil {
			return model.Placement{}, &UnplaceableError{UnitID: u.ID, Label: u.Label}
		}
	}

	rect := p.slabs[best.slabIdx][best.rectIdx]
	uw, uh := u.LengthMm+p.spec.KerfMm, u.WidthMm+p.spec.KerfMm
	if best.rotated {
		uw, uh = uh, uw
	}
	p.split(best.slabIdx, best.rectIdx, uw, uh)

	return model.Placement{
		Unit:      u,
		SlabIndex: best.slabIdx,
		X:         rect.x,
		Y:         rect.y,
		Rotated:   best.rotated,
	}, nil
}

// findBestOriented is findBest restricted to a single orientation.
func (p *slabPacker) findBestOriented(u model.CutUnit, fromSlab int, rotated bool) *candidate {
	uw := u.LengthMm + p.spec.KerfMm
	uh := u.WidthMm + p.spec.KerfMm
	if rotated {
		uw, uh = uh, uw
	}

	var best *candidate
	for si := fromSlab; si < len(p.slabs); si++ {
		for ri, r := range p.slabs[si] {
			if uw > r.w+epsilon || uh > r.h+epsilon {
				continue
			}
			c := candidate{
				slabIdx:      si,
				rectIdx:      ri,
				rotated:      rotated,
				leftoverArea: r.w*r.h - uw*uh,
				leftoverW:    r.w - uw,
			}
			if c.better(best) {
				cc := c
				best = &cc
			}
		}
	}
	return best
}

// findBest scans free rectangles of slabs[fromSlab:] for the best candidate,
// trying the unit unrotated and, when allowed, rotated 90 degrees.
func (p *slabPacker) findBest(u model.CutUnit, fromSlab int) *candidate {
	uw := u.LengthMm + p.spec.KerfMm
	uh := u.WidthMm + p.spec.KerfMm

	var best *candidate
	for si := fromSlab; si < len(p.slabs); si++ {
		for ri, r := range p.slabs[si] {
			orientations := [][2]float64{{uw, uh}}
			if u.Rotatable && uw != uh {
				orientations = append(orientations, [2]float64{uh, uw})
			}
			for oi, dims := range orientations {
				w, h := dims[0], dims[1]
				if w > r.w+epsilon || h > r.h+epsilon {
					continue
				}
				c := candidate{
					slabIdx:      si,
					rectIdx:      ri,
					rotated:      oi == 1,
					leftoverArea: r.w*r.h - w*h,
					leftoverW:    r.w - w,
				}
				if c.better(best) {
					cc := c
					best = &cc
				}
			}
		}
	}
	return best
}

// split replaces the consumed free rectangle with up to two disjoint
// remainders via a guillotine cut: one spanning the unused width at the
// placed height, one spanning the unused height at the full original width.
// Degenerate (zero-area) remainders are discarded and the consumed rectangle
// is never re-inserted.
func (p *slabPacker) split(slabIdx, rectIdx int, uw, uh float64) {
	r := p.slabs[slabIdx][rectIdx]
	free := append(p.slabs[slabIdx][:rectIdx:rectIdx], p.slabs[slabIdx][rectIdx+1:]...)

	right := freeRect{x: r.x + uw, y: r.y, w: r.w - uw, h: uh}
	if right.w > epsilon && right.h > epsilon {
		free = append(free, right)
	}
	bottom := freeRect{x: r.x, y: r.y + uh, w: r.w, h: r.h - uh}
	if bottom.w > epsilon && bottom.h > epsilon {
		free = append(free, bottom)
	}

	p.slabs[slabIdx] = free
}
