// Package model defines the data types exchanged by the slab nesting
// pipeline: quote pieces coming in, cut units flowing through the optimizer,
// and placements/slabs coming out.
package model

import (
	"fmt"

	"github.com/google/uuid"
)

// UnitKind distinguishes the two kinds of rectangles cut from a slab.
type UnitKind string

const (
	UnitMain            UnitKind = "MAIN"
	UnitLaminationStrip UnitKind = "LAMINATION_STRIP"
)

// EdgeSide identifies one side of a rectangular piece.
type EdgeSide string

const (
	EdgeFront EdgeSide = "front"
	EdgeBack  EdgeSide = "back"
	EdgeLeft  EdgeSide = "left"
	EdgeRight EdgeSide = "right"
)

// EdgeSides lists all sides in a fixed order. Strip generation and export
// iterate this slice rather than a map so output ordering is stable.
var EdgeSides = []EdgeSide{EdgeFront, EdgeBack, EdgeLeft, EdgeRight}

// EdgeFinish describes the finish required on one side of a piece.
type EdgeFinish struct {
	Laminated   bool   `json:"laminated"`
	StripConfig string `json:"strip_config,omitempty"` // named config; empty means STANDARD
}

// Leg is one rectangular region of a non-rectangular piece. Shape
// decomposition (L/U benchtops into rectangles) happens upstream; the
// optimizer only ever sees the resulting legs.
type Leg struct {
	Label    string  `json:"label"`
	LengthMm float64 `json:"length_mm"`
	WidthMm  float64 `json:"width_mm"`
}

// Piece is one quoted benchtop piece as supplied by the quote data store.
type Piece struct {
	ID          string                  `json:"id"`
	Label       string                  `json:"label"`
	Type        string                  `json:"type,omitempty"` // fabrication category pass-through
	LengthMm    float64                 `json:"length_mm"`
	WidthMm     float64                 `json:"width_mm"`
	ThicknessMm float64                 `json:"thickness_mm"`
	GrainMatch  bool                    `json:"grain_match"` // set upstream; forbids rotation
	Edges       map[EdgeSide]EdgeFinish `json:"edges,omitempty"`
	Legs        []Leg                   `json:"legs,omitempty"` // empty for plain rectangles
}

// NewPiece creates a rectangular piece with a fresh short id.
func NewPiece(label string, lengthMm, widthMm, thicknessMm float64) Piece {
	return Piece{
		ID:          uuid.New().String()[:8],
		Label:       label,
		LengthMm:    lengthMm,
		WidthMm:     widthMm,
		ThicknessMm: thicknessMm,
		Edges:       map[EdgeSide]EdgeFinish{},
	}
}

// EdgeLength returns the finished length of the given edge in mm.
func (p Piece) EdgeLength(side EdgeSide) float64 {
	switch side {
	case EdgeFront, EdgeBack:
		return p.LengthMm
	default:
		return p.WidthMm
	}
}

// Validate rejects pieces with non-positive dimensions before any packing
// attempt is made.
func (p Piece) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("piece %q: missing id", p.Label)
	}
	if p.LengthMm <= 0 || p.WidthMm <= 0 {
		return fmt.Errorf("piece %q: non-positive dimensions %.1f x %.1f mm", p.Label, p.LengthMm, p.WidthMm)
	}
	if p.ThicknessMm <= 0 {
		return fmt.Errorf("piece %q: non-positive thickness %.1f mm", p.Label, p.ThicknessMm)
	}
	for i, leg := range p.Legs {
		if leg.LengthMm <= 0 || leg.WidthMm <= 0 {
			return fmt.Errorf("piece %q leg %d: non-positive dimensions %.1f x %.1f mm",
				p.Label, i, leg.LengthMm, leg.WidthMm)
		}
	}
	return nil
}

// CutUnit is one rectangle to cut from a slab: either a main piece (or a leg
// or join segment of one) or a lamination strip.
type CutUnit struct {
	ID            string   `json:"id"`
	ParentPieceID string   `json:"parent_piece_id"`
	ParentLabel   string   `json:"parent_label"`
	Kind          UnitKind `json:"kind"`
	LengthMm      float64  `json:"length_mm"`
	WidthMm       float64  `json:"width_mm"`
	Rotatable     bool     `json:"rotatable"`
	Label         string   `json:"label"`
	JoinIndex     int      `json:"join_index"`              // -1 when the unit was not split
	JoinPosition  string   `json:"join_position,omitempty"` // LEFT / MIDDLE / RIGHT
}

// Area returns the true (uninflated) area in square mm.
func (u CutUnit) Area() float64 {
	return u.LengthMm * u.WidthMm
}

// SlabSpec describes the raw material sheet pieces are nested onto.
type SlabSpec struct {
	LengthMm     float64 `json:"length_mm"`
	WidthMm      float64 `json:"width_mm"`
	KerfMm       float64 `json:"kerf_mm"`        // saw blade clearance reserved around each cut
	TrimMarginMm float64 `json:"trim_margin_mm"` // unusable border on every slab edge
}

// UsableLength returns the interior length after edge trim.
func (s SlabSpec) UsableLength() float64 {
	return s.LengthMm - 2*s.TrimMarginMm
}

// UsableWidth returns the interior width after edge trim.
func (s SlabSpec) UsableWidth() float64 {
	return s.WidthMm - 2*s.TrimMarginMm
}

// InteriorArea returns the usable interior area in square mm.
func (s SlabSpec) InteriorArea() float64 {
	return s.UsableLength() * s.UsableWidth()
}

func (s SlabSpec) Validate() error {
	if s.LengthMm <= 0 || s.WidthMm <= 0 {
		return fmt.Errorf("slab: non-positive dimensions %.1f x %.1f mm", s.LengthMm, s.WidthMm)
	}
	if s.KerfMm < 0 {
		return fmt.Errorf("slab: negative kerf %.1f mm", s.KerfMm)
	}
	if s.TrimMarginMm < 0 {
		return fmt.Errorf("slab: negative trim margin %.1f mm", s.TrimMarginMm)
	}
	if s.UsableLength() <= 0 || s.UsableWidth() <= 0 {
		return fmt.Errorf("slab: trim margin %.1f mm leaves no usable interior", s.TrimMarginMm)
	}
	return nil
}

// Placement records where one cut unit ended up.
// X and Y are relative to the slab's usable interior (the trim margin has
// already been subtracted).
type Placement struct {
	Unit      CutUnit `json:"unit"`
	SlabIndex int     `json:"slab_index"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Rotated   bool    `json:"rotated"` // rotated 90 degrees
}

// PlacedWidth returns the X extent after any rotation.
func (p Placement) PlacedWidth() float64 {
	if p.Rotated {
		return p.Unit.WidthMm
	}
	return p.Unit.LengthMm
}

// PlacedHeight returns the Y extent after any rotation.
func (p Placement) PlacedHeight() float64 {
	if p.Rotated {
		return p.Unit.LengthMm
	}
	return p.Unit.WidthMm
}

// Slab is one consumed slab with its placements and area bookkeeping.
// UsedArea sums true (uninflated) placed areas; kerf clearance counts as waste.
type Slab struct {
	Index        int         `json:"index"`
	Placements   []Placement `json:"placements"`
	UsedArea     float64     `json:"used_area"`
	WasteArea    float64     `json:"waste_area"`
	WastePercent float64     `json:"waste_percent"`
}

// StripDetail describes one placed lamination strip in the summary.
type StripDetail struct {
	CutUnitID string  `json:"cut_unit_id"`
	Edge      string  `json:"edge"`
	SlabIndex int     `json:"slab_index"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	LengthMm  float64 `json:"length_mm"`
	WidthMm   float64 `json:"width_mm"`
	Rotated   bool    `json:"rotated"`
}

// ParentStrips groups the strips generated for one parent piece.
type ParentStrips struct {
	ParentPieceID string        `json:"parent_piece_id"`
	ParentLabel   string        `json:"parent_label"`
	Strips        []StripDetail `json:"strips"`
}

// LaminationSummary aggregates all placed lamination strips.
type LaminationSummary struct {
	TotalStrips    int            `json:"total_strips"`
	TotalStripArea float64        `json:"total_strip_area"`
	StripsByParent []ParentStrips `json:"strips_by_parent"`
}

// OptimizationResult is the full output of one optimization run. It is
// transient: recomputed from the current piece list on every request, never
// persisted as a source of truth.
type OptimizationResult struct {
	Slabs          []Slab            `json:"slabs"`
	Placements     []Placement       `json:"placements"` // flattened, mains followed by their strips
	TotalSlabs     int               `json:"total_slabs"`
	TotalPieces    int               `json:"total_pieces"`
	TotalUsedArea  float64           `json:"total_used_area"`
	TotalWasteArea float64           `json:"total_waste_area"`
	WastePercent   float64           `json:"waste_percent"`
	Lamination     LaminationSummary `json:"lamination_summary"`
}

// JoinCount returns the number of joins required for the given parent piece:
// segments sharing its id minus one, or zero when the piece was never split.
func (r *OptimizationResult) JoinCount(parentPieceID string) int {
	segments := 0
	for _, p := range r.Placements {
		if p.Unit.Kind == UnitMain && p.Unit.ParentPieceID == parentPieceID && p.Unit.JoinIndex >= 0 {
			segments++
		}
	}
	if segments < 2 {
		return 0
	}
	return segments - 1
}

// NestSettings holds everything the optimizer needs besides the pieces.
type NestSettings struct {
	Strategy     string                 `json:"strategy"` // "guillotine" or "genetic"
	Slab         SlabSpec               `json:"slab"`
	StripConfigs map[string]StripConfig `json:"strip_configs,omitempty"` // nil means defaults
}

// Strategy names understood by the engine.
const (
	StrategyGuillotine = "guillotine"
	StrategyGenetic    = "genetic"
)

// DefaultSettings returns settings for a standard 3200x1600 engineered stone
// slab with an 8mm bridge-saw kerf and 20mm edge trim.
func DefaultSettings() NestSettings {
	return NestSettings{
		Strategy: StrategyGuillotine,
		Slab: SlabSpec{
			LengthMm:     3200,
			WidthMm:      1600,
			KerfMm:       8,
			TrimMarginMm: 20,
		},
	}
}
