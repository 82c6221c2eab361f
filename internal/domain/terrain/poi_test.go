package terrain

import (
	"errors"
	"testing"
)

func uniformGrid(width, height int, label string) BiomeGrid {
	g := BiomeGrid{Width: width, Height: height, Labels: make([]string, width*height)}
	for i := range g.Labels {
		g.Labels[i] = label
	}
	return g
}

func TestSamplePOIsDistinctCells(t *testing.T) {
	grid := uniformGrid(6, 6, "grassland")

	pois, err := SamplePOIs(grid, 12, 7)
	if err != nil {
		t.Fatalf("SamplePOIs error: %v", err)
	}
	if len(pois) != 12 {
		t.Fatalf("placement count: got=%d want=12", len(pois))
	}
	seen := map[[2]int]bool{}
	ids := map[string]bool{}
	for _, p := range pois {
		cell := [2]int{p.X, p.Y}
		if seen[cell] {
			t.Fatalf("cell (%d,%d) placed twice", p.X, p.Y)
		}
		seen[cell] = true
		if ids[p.ID] {
			t.Fatalf("duplicate poi id %q", p.ID)
		}
		ids[p.ID] = true
	}
}

func TestSamplePOIsDeterministic(t *testing.T) {
	grid := uniformGrid(8, 8, "forest")

	a, _ := SamplePOIs(grid, 5, 42)
	b, _ := SamplePOIs(grid, 5, 42)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("placement %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSamplePOIsSkipsZeroWeight(t *testing.T) {
	// All water except one grassland cell; every placement must land there.
	grid := uniformGrid(4, 4, "ocean")
	grid.Labels[9] = "grassland"

	pois, err := SamplePOIs(grid, 1, 3)
	if err != nil {
		t.Fatalf("SamplePOIs error: %v", err)
	}
	if len(pois) != 1 {
		t.Fatalf("placement count: got=%d want=1", len(pois))
	}
	if pois[0].Biome != "grassland" {
		t.Fatalf("placed on zero-weight biome: %q", pois[0].Biome)
	}
}

func TestSamplePOIsPartialResult(t *testing.T) {
	grid := uniformGrid(3, 3, "ocean")
	grid.Labels[4] = "forest"

	pois, err := SamplePOIs(grid, 5, 11)
	if !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("expected ErrResourceExhausted, got %v", err)
	}
	if len(pois) != 1 {
		t.Fatalf("partial placement count: got=%d want=1", len(pois))
	}
}

func TestSamplePOIsAllWater(t *testing.T) {
	grid := uniformGrid(3, 3, "ocean")

	pois, err := SamplePOIs(grid, 2, 1)
	if !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("expected ErrResourceExhausted, got %v", err)
	}
	if len(pois) != 0 {
		t.Fatalf("placements on all-water grid: got=%d want=0", len(pois))
	}
}

func TestSamplePOIsZeroCount(t *testing.T) {
	grid := uniformGrid(3, 3, "forest")

	pois, err := SamplePOIs(grid, 0, 1)
	if err != nil {
		t.Fatalf("SamplePOIs error: %v", err)
	}
	if len(pois) != 0 {
		t.Fatalf("placements for zero count: got=%d", len(pois))
	}
}
