package engine

import (
	"fmt"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// Optimize runs the full nesting pipeline for one set of quoted pieces:
// normalize pieces into cut units, generate lamination strips, split anything
// the slab interior cannot hold, pack with the configured strategy and
// aggregate the placements.
//
// The run is deterministic for a given input and settings, so callers may
// cache results keyed on the input alone.
func Optimize(pieces []model.Piece, settings model.NestSettings) (*model.OptimizationResult, error) {
	if err := settings.Slab.Validate(); err != nil {
		return nil, err
	}
	strategy, err := StrategyFor(settings.Strategy)
	if err != nil {
		return nil, err
	}

	units, err := PrepareUnits(pieces, settings)
	if err != nil {
		return nil, err
	}

	placements, err := strategy.Pack(units, settings.Slab)
	if err != nil {
		return nil, err
	}

	return Aggregate(units, placements, settings.Slab), nil
}

// PrepareUnits runs the pre-packing stages and returns the final cut unit
// list handed to a strategy: normalized mains, lamination strips, both
// resolved against the slab's size limit. Every returned unit is guaranteed
// to fit an empty slab.
func PrepareUnits(pieces []model.Piece, settings model.NestSettings) ([]model.CutUnit, error) {
	units, err := NormalizePieces(pieces)
	if err != nil {
		return nil, err
	}

	strips, err := model.GenerateStrips(pieces, settings.StripConfigs)
	if err != nil {
		return nil, fmt.Errorf("lamination strips: %w", err)
	}
	units = append(units, strips...)

	return ResolveOversize(units, settings.Slab)
}
