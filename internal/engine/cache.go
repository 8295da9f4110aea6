package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// ResultCache memoizes optimization runs keyed on a content hash of the
// input. Optimization is deterministic, so a hash hit can return the stored
// result without re-packing; concurrent requests for the same key share one
// computation.
type ResultCache struct {
	cache *lru.Cache[string, *model.OptimizationResult]
	group singleflight.Group
}

// NewResultCache creates a cache holding up to size results.
func NewResultCache(size int) (*ResultCache, error) {
	c, err := lru.New[string, *model.OptimizationResult](size)
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: c}, nil
}

// cacheInput is the canonical form hashed into a cache key. It covers
// everything that can change the output: the pieces (ids, dimensions, edges,
// legs, grain) and the full settings.
type cacheInput struct {
	Pieces   []model.Piece      `json:"pieces"`
	Settings model.NestSettings `json:"settings"`
}

// Key returns the content hash for one optimization input.
func Key(pieces []model.Piece, settings model.NestSettings) (string, error) {
	raw, err := json.Marshal(cacheInput{Pieces: pieces, Settings: settings})
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// Optimize returns the cached result for the given input, running the
// pipeline on a miss. The returned result is shared between callers and must
// be treated as read-only.
func (rc *ResultCache) Optimize(pieces []model.Piece, settings model.NestSettings) (*model.OptimizationResult, error) {
	key, err := Key(pieces, settings)
	if err != nil {
		return nil, err
	}

	if result, ok := rc.cache.Get(key); ok {
		return result, nil
	}

	v, err, _ := rc.group.Do(key, func() (interface{}, error) {
		result, err := Optimize(pieces, settings)
		if err != nil {
			return nil, err
		}
		rc.cache.Add(key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.OptimizationResult), nil
}

// Len returns the number of cached results.
func (rc *ResultCache) Len() int {
	return rc.cache.Len()
}

// Purge drops all cached results.
func (rc *ResultCache) Purge() {
	rc.cache.Purge()
}
