package engine

import (
	"fmt"
	"math"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// Join position labels for split segments, reading along the split axis.
const (
	JoinLeft   = "LEFT"
	JoinMiddle = "MIDDLE"
	JoinRight  = "RIGHT"
)

// ResolveOversize guarantees that no cut unit reaching the packer has a
// dimension larger than the slab's usable interior. A unit whose long
// dimension exceeds the limit is split into N = ceil(dim/limit) near-equal
// segments (at most 1mm apart) that are later rejoined on site; each segment
// shares the original unit's parent and carries a join index and position.
//
// The limit deducts the kerf from the usable interior so a kerf-inflated
// segment is always guaranteed to fit a fresh slab.
func ResolveOversize(units []model.CutUnit, slab model.SlabSpec) ([]model.CutUnit, error) {
	limitLength := slab.UsableLength() - slab.KerfMm
	limitWidth := slab.UsableWidth() - slab.KerfMm
	maxLong := math.Max(limitLength, limitWidth)
	maxShort := math.Min(limitLength, limitWidth)

	resolved := make([]model.CutUnit, 0, len(units))
	for _, u := range units {
		// A rotatable unit is held to the orientation-agnostic limits: its
		// long dimension splits against the longer usable axis. A grain-locked
		// unit cannot turn, so each of its dimensions is held to its own axis
		// limit and the split runs along whichever dimension overflows.
		splitLength := u.LengthMm >= u.WidthMm
		splitDim, splitLimit := math.Max(u.LengthMm, u.WidthMm), maxLong
		crossDim, crossLimit := math.Min(u.LengthMm, u.WidthMm), maxShort
		if !u.Rotatable {
			if u.LengthMm > limitLength {
				splitLength = true
				splitDim, splitLimit = u.LengthMm, limitLength
				crossDim, crossLimit = u.WidthMm, limitWidth
			} else {
				splitLength = false
				splitDim, splitLimit = u.WidthMm, limitWidth
				crossDim, crossLimit = u.LengthMm, limitLength
			}
		}

		// The crosswise dimension is never split; if it cannot fit the slab
		// the piece is simply too wide to fabricate from this material, which
		// is an input error rather than a packing concern.
		if crossDim > crossLimit {
			return nil, fmt.Errorf("cut unit %s (%q): crosswise dimension %.0fmm exceeds usable slab interior %.0fmm",
				u.ID, u.Label, crossDim, crossLimit)
		}
		if splitDim <= splitLimit {
			resolved = append(resolved, u)
			continue
		}

		n := int(math.Ceil(splitDim / splitLimit))
		segments := splitEvenly(splitDim, n, splitLimit)
		for i, seg := range segments {
			s := u
			s.ID = fmt.Sprintf("%s-j%d", u.ID, i)
			s.JoinIndex = i
			s.JoinPosition = joinPosition(i, n)
			s.Label = fmt.Sprintf("%s (%s)", u.Label, s.JoinPosition)
			if splitLength {
				s.LengthMm = seg
			} else {
				s.WidthMm = seg
			}
			resolved = append(resolved, s)
		}
	}
	return resolved, nil
}

// splitEvenly divides total into n segments differing by at most 1mm, none
// exceeding limit. Whole-mm totals are distributed as whole millimetres
// unless rounding a segment up would push it past the limit, in which case
// the division falls back to exact fractions (n is already ceil(total/limit),
// so total/n always fits). A naive truncation that leaves a sliver segment is
// never produced.
func splitEvenly(total float64, n int, limit float64) []float64 {
	segments := make([]float64, n)
	if total == math.Trunc(total) {
		base := int(total) / n
		rem := int(total) % n
		if rem == 0 || float64(base+1) <= limit {
			for i := range segments {
				segments[i] = float64(base)
				if i < rem {
					segments[i]++
				}
			}
			return segments
		}
	}
	for i := range segments {
		segments[i] = total / float64(n)
	}
	return segments
}

// joinPosition labels segment i of n along the split axis.
func joinPosition(i, n int) string {
	switch {
	case i == 0:
		return JoinLeft
	case i == n-1:
		return JoinRight
	case n == 3:
		return JoinMiddle
	default:
		return fmt.Sprintf("%s %d", JoinMiddle, i)
	}
}
