package mwaxstats

import "fmt"

// Baseline is a tile pair with Tile1 <= Tile2, in antenna-order indices.
// Baselines with Tile1 == Tile2 are auto-correlations.
type Baseline struct {
	Tile1, Tile2 int
}

// IsAuto reports whether the baseline correlates a tile with itself.
func (b Baseline) IsAuto() bool {
	return b.Tile1 == b.Tile2
}

// NumBaselines returns N*(N+1)/2, the number of baselines (autos included) for N tiles.
func NumBaselines(ntiles int) int {
	return ntiles * (ntiles + 1) / 2
}

// BaselineIndex is the canonical baseline ordering used by every fringe output:
// for tile1 in [0,N), for tile2 in [tile1,N), emit (tile1, tile2).
type BaselineIndex struct {
	ntiles int
	pairs  []Baseline
}

// NewBaselineIndex builds the baseline ordering for ntiles tiles.
func NewBaselineIndex(ntiles int) (*BaselineIndex, error) {
	if ntiles <= 0 {
		return nil, fmt.Errorf("%w: %d tiles", ErrInvalidTileCount, ntiles)
	}
	bi := &BaselineIndex{ntiles: ntiles, pairs: make([]Baseline, 0, NumBaselines(ntiles))}
	for t1 := 0; t1 < ntiles; t1++ {
		for t2 := t1; t2 < ntiles; t2++ {
			bi.pairs = append(bi.pairs, Baseline{Tile1: t1, Tile2: t2})
		}
	}
	return bi, nil
}

// NumTiles returns the tile count N.
func (bi *BaselineIndex) NumTiles() int {
	return bi.ntiles
}

// Count returns the number of baselines, N*(N+1)/2.
func (bi *BaselineIndex) Count() int {
	return len(bi.pairs)
}

// Pairs returns the baselines in canonical order. The caller must not modify it.
func (bi *BaselineIndex) Pairs() []Baseline {
	return bi.pairs
}

// Index returns the position of baseline (tile1, tile2) in the canonical order.
// The arguments may be given in either order.
func (bi *BaselineIndex) Index(tile1, tile2 int) (int, bool) {
	if tile1 > tile2 {
		tile1, tile2 = tile2, tile1
	}
	if tile1 < 0 || tile2 >= bi.ntiles {
		return 0, false
	}
	// Rows 0..tile1-1 hold N, N-1, ... N-tile1+1 baselines.
	rowStart := tile1*bi.ntiles - tile1*(tile1-1)/2
	return rowStart + (tile2 - tile1), true
}

// AutoIndex returns the position of the auto-correlation baseline (tile, tile).
func (bi *BaselineIndex) AutoIndex(tile int) int {
	idx, ok := bi.Index(tile, tile)
	if !ok {
		panic(fmt.Sprintf("AutoIndex: tile %d out of range [0,%d)", tile, bi.ntiles))
	}
	return idx
}
