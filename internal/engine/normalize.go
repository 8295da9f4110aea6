// Package engine implements the slab nesting pipeline: piece normalization,
// lamination strip generation, oversize splitting, and the packing strategies
// that place every cut unit onto the fewest slabs.
package engine

import (
	"fmt"
	"strconv"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// NormalizePieces turns quote pieces into flat MAIN cut units, one per
// rectangular leg. Pieces without legs are treated as a single rectangle.
// Unit ids are derived from the piece id so a given piece list always
// produces the same units.
func NormalizePieces(pieces []model.Piece) ([]model.CutUnit, error) {
	units := make([]model.CutUnit, 0, len(pieces))
	for _, piece := range pieces {
		if err := piece.Validate(); err != nil {
			return nil, err
		}

		if len(piece.Legs) == 0 {
			units = append(units, model.CutUnit{
				ID:            piece.ID,
				ParentPieceID: piece.ID,
				ParentLabel:   piece.Label,
				Kind:          model.UnitMain,
				LengthMm:      piece.LengthMm,
				WidthMm:       piece.WidthMm,
				Rotatable:     !piece.GrainMatch,
				Label:         piece.Label,
				JoinIndex:     -1,
			})
			continue
		}

		for i, leg := range piece.Legs {
			label := leg.Label
			if label == "" {
				label = "leg " + strconv.Itoa(i+1)
			}
			units = append(units, model.CutUnit{
				ID:            fmt.Sprintf("%s.%d", piece.ID, i),
				ParentPieceID: piece.ID,
				ParentLabel:   piece.Label,
				Kind:          model.UnitMain,
				LengthMm:      leg.LengthMm,
				WidthMm:       leg.WidthMm,
				Rotatable:     !piece.GrainMatch,
				Label:         piece.Label + " " + label,
				JoinIndex:     -1,
			})
		}
	}
	return units, nil
}
