package mwaxstats

import (
	"errors"
	"testing"
)

func TestBaselineOrder(t *testing.T) {
	bi, err := NewBaselineIndex(3)
	if err != nil {
		t.Fatal(err)
	}
	expect := []Baseline{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2}}
	pairs := bi.Pairs()
	if len(pairs) != len(expect) {
		t.Fatalf("NewBaselineIndex(3) has %d pairs, want %d", len(pairs), len(expect))
	}
	for i, bl := range expect {
		if pairs[i] != bl {
			t.Errorf("pair %d = %v, want %v", i, pairs[i], bl)
		}
	}
}

func TestBaselineCounts(t *testing.T) {
	for _, n := range []int{1, 2, 3, 8, 128, 144, 256} {
		bi, err := NewBaselineIndex(n)
		if err != nil {
			t.Fatalf("NewBaselineIndex(%d) error: %v", n, err)
		}
		want := n * (n + 1) / 2
		if bi.Count() != want || NumBaselines(n) != want {
			t.Errorf("N=%d: Count()=%d NumBaselines=%d, want %d", n, bi.Count(), NumBaselines(n), want)
		}
		pairs := bi.Pairs()
		if pairs[0] != (Baseline{0, 0}) {
			t.Errorf("N=%d: first pair %v, want (0,0)", n, pairs[0])
		}
		if pairs[len(pairs)-1] != (Baseline{n - 1, n - 1}) {
			t.Errorf("N=%d: last pair %v, want (%d,%d)", n, pairs[len(pairs)-1], n-1, n-1)
		}
		seen := make(map[Baseline]bool)
		autos := 0
		for i, bl := range pairs {
			if bl.Tile1 > bl.Tile2 {
				t.Errorf("N=%d: pair %d = %v has tile1 > tile2", n, i, bl)
			}
			if seen[bl] {
				t.Errorf("N=%d: pair %v repeated", n, bl)
			}
			seen[bl] = true
			if bl.IsAuto() {
				autos++
			}
			idx, ok := bi.Index(bl.Tile1, bl.Tile2)
			if !ok || idx != i {
				t.Errorf("N=%d: Index(%d,%d) = %d,%t, want %d,true", n, bl.Tile1, bl.Tile2, idx, ok, i)
			}
			if rev, _ := bi.Index(bl.Tile2, bl.Tile1); rev != i {
				t.Errorf("N=%d: Index(%d,%d) = %d, want %d", n, bl.Tile2, bl.Tile1, rev, i)
			}
		}
		if autos != n {
			t.Errorf("N=%d: %d autos, want %d", n, autos, n)
		}
		for tile := 0; tile < n; tile++ {
			if bl := pairs[bi.AutoIndex(tile)]; bl != (Baseline{tile, tile}) {
				t.Errorf("N=%d: AutoIndex(%d) points at %v", n, tile, bl)
			}
		}
	}
}

func TestBaselineIndexOutOfRange(t *testing.T) {
	bi, _ := NewBaselineIndex(4)
	for _, tt := range [][2]int{{-1, 0}, {0, 4}, {4, 4}, {5, 1}} {
		if _, ok := bi.Index(tt[0], tt[1]); ok {
			t.Errorf("Index(%d,%d) ok, want out of range", tt[0], tt[1])
		}
	}
	defer func() {
		if recover() == nil {
			t.Error("AutoIndex(4) with 4 tiles did not panic")
		}
	}()
	bi.AutoIndex(4)
}

func TestInvalidTileCount(t *testing.T) {
	for _, n := range []int{0, -1, -128} {
		if _, err := NewBaselineIndex(n); !errors.Is(err, ErrInvalidTileCount) {
			t.Errorf("NewBaselineIndex(%d) error = %v, want ErrInvalidTileCount", n, err)
		}
	}
}
