package model

import "fmt"

// StripConfig is one named lamination strip profile. A built-up edge is faked
// by bonding a strip of the same material under the benchtop edge; the strip
// that gets cut is wider than the visible drop because part of it is consumed
// by the lamination joint and the saw kerf.
type StripConfig struct {
	Name              string  `json:"name"`
	StripWidthMm      float64 `json:"strip_width_mm"`      // width of the strip to cut
	VisibleWidthMm    float64 `json:"visible_width_mm"`    // finished visible drop
	LaminationWidthMm float64 `json:"lamination_width_mm"` // consumed by the glue joint
	KerfLossMm        float64 `json:"kerf_loss_mm"`        // lost to the trimming cut
}

// Built-in strip configuration names.
const (
	StripStandard = "STANDARD"
	StripWide     = "WIDE" // waterfall ends
)

// DefaultStripConfigs returns the built-in strip configuration table.
// StripWidth = Visible + Lamination + KerfLoss for each entry.
func DefaultStripConfigs() map[string]StripConfig {
	return map[string]StripConfig{
		StripStandard: {
			Name:              StripStandard,
			StripWidthMm:      108,
			VisibleWidthMm:    60,
			LaminationWidthMm: 40,
			KerfLossMm:        8,
		},
		StripWide: {
			Name:              StripWide,
			StripWidthMm:      348,
			VisibleWidthMm:    300,
			LaminationWidthMm: 40,
			KerfLossMm:        8,
		},
	}
}

// StripID returns the deterministic cut unit id for a piece's edge strip.
func StripID(pieceID string, side EdgeSide) string {
	return pieceID + "-" + string(side)
}

// GenerateStrips derives one lamination strip cut unit per laminated edge of
// each piece. Edges without a lamination requirement produce nothing. The
// returned units are ordered by piece, then by EdgeSides order, so identical
// input always yields identical output.
//
// configs may be nil, in which case the built-in table is used. A laminated
// edge naming an unknown strip configuration is a validation error.
func GenerateStrips(pieces []Piece, configs map[string]StripConfig) ([]CutUnit, error) {
	if configs == nil {
		configs = DefaultStripConfigs()
	}

	var strips []CutUnit
	for _, piece := range pieces {
		for _, side := range EdgeSides {
			finish, ok := piece.Edges[side]
			if !ok || !finish.Laminated {
				continue
			}

			name := finish.StripConfig
			if name == "" {
				name = StripStandard
			}
			cfg, ok := configs[name]
			if !ok {
				return nil, fmt.Errorf("piece %q %s edge: unknown strip configuration %q",
					piece.Label, side, name)
			}

			strips = append(strips, CutUnit{
				ID:            StripID(piece.ID, side),
				ParentPieceID: piece.ID,
				ParentLabel:   piece.Label,
				Kind:          UnitLaminationStrip,
				LengthMm:      piece.EdgeLength(side),
				WidthMm:       cfg.StripWidthMm,
				Rotatable:     !piece.GrainMatch,
				Label:         fmt.Sprintf("%s %s strip", piece.Label, side),
				JoinIndex:     -1,
			})
		}
	}
	return strips, nil
}
