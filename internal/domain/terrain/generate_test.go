package terrain

import (
	"errors"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := GenerationConfig{Width: 16, Height: 16, Seed: "42", POICount: 4}

	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	for i := range a.Elevation.Values {
		if a.Elevation.Values[i] != b.Elevation.Values[i] {
			t.Fatalf("elevation cell %d differs: %v vs %v", i, a.Elevation.Values[i], b.Elevation.Values[i])
		}
		if a.Moisture.Values[i] != b.Moisture.Values[i] {
			t.Fatalf("moisture cell %d differs", i)
		}
		if a.Biomes.Labels[i] != b.Biomes.Labels[i] {
			t.Fatalf("biome cell %d differs: %q vs %q", i, a.Biomes.Labels[i], b.Biomes.Labels[i])
		}
	}
	if len(a.POIs) != len(b.POIs) {
		t.Fatalf("poi count differs: %d vs %d", len(a.POIs), len(b.POIs))
	}
	for i := range a.POIs {
		if a.POIs[i] != b.POIs[i] {
			t.Fatalf("poi %d differs: %+v vs %+v", i, a.POIs[i], b.POIs[i])
		}
	}
}

func TestGenerateSeedChangesWorld(t *testing.T) {
	a, err := Generate(GenerationConfig{Width: 16, Height: 16, Seed: "1"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	b, err := Generate(GenerationConfig{Width: 16, Height: 16, Seed: "2"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	same := true
	for i := range a.Elevation.Values {
		if a.Elevation.Values[i] != b.Elevation.Values[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical elevation")
	}
}

func TestGenerateFieldsNormalized(t *testing.T) {
	w, err := Generate(GenerationConfig{Width: 24, Height: 24, Seed: "37"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	for _, f := range []ScalarField{w.Elevation, w.Moisture} {
		minV, maxV := f.MinMax()
		if minV != 0 {
			t.Fatalf("field min: got=%v want=0", minV)
		}
		if maxV != 1 {
			t.Fatalf("field max: got=%v want=1", maxV)
		}
	}
}

func TestGenerateInvalidDimensions(t *testing.T) {
	for _, cfg := range []GenerationConfig{
		{Width: 0, Height: 16},
		{Width: 16, Height: 0},
		{Width: -1, Height: 16},
	} {
		if _, err := Generate(cfg); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("Generate(%dx%d): got=%v want=ErrInvalidDimensions", cfg.Width, cfg.Height, err)
		}
	}
}

func TestGenerateNegativeOctaves(t *testing.T) {
	_, err := Generate(GenerationConfig{Width: 8, Height: 8, Octaves: -1})
	if !errors.Is(err, ErrInvalidOctaves) {
		t.Fatalf("negative octaves: got=%v want=ErrInvalidOctaves", err)
	}
}

func TestGenerateAppliesDefaults(t *testing.T) {
	w, err := Generate(GenerationConfig{Width: 8, Height: 8, Seed: "5"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if w.Config.Octaves != DefaultOctaves {
		t.Fatalf("octaves default: got=%d want=%d", w.Config.Octaves, DefaultOctaves)
	}
	if w.Config.Persistence != DefaultPersistence {
		t.Fatalf("persistence default: got=%v want=%v", w.Config.Persistence, DefaultPersistence)
	}
	if w.Config.POICount != DefaultPOICount {
		t.Fatalf("poi count default: got=%d want=%d", w.Config.POICount, DefaultPOICount)
	}
}

func TestGenerateIslandModeSinksCorners(t *testing.T) {
	w, err := Generate(GenerationConfig{Width: 33, Height: 33, Seed: "42", IslandMode: true})
	if err != nil && !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("Generate error: %v", err)
	}

	center := w.Elevation.At(16, 16)
	for _, c := range [4][2]int{{0, 0}, {32, 0}, {0, 32}, {32, 32}} {
		corner := w.Elevation.At(c[0], c[1])
		if corner >= center {
			t.Fatalf("corner (%d,%d) not below center: corner=%v center=%v", c[0], c[1], corner, center)
		}
	}
}

func TestGenerateSmallIslandScenario(t *testing.T) {
	w, err := Generate(GenerationConfig{Width: 8, Height: 8, Seed: "42", Octaves: 4, IslandMode: true})
	if err != nil && !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("Generate error: %v", err)
	}

	for i, v := range w.Elevation.Values {
		if v < 0 || v > 1 {
			t.Fatalf("elevation cell %d out of range: %v", i, v)
		}
	}
	for i, label := range w.Biomes.Labels {
		if _, ok := RuleByLabel(label); !ok {
			t.Fatalf("cell %d carries unknown biome %q", i, label)
		}
	}

	// The falloff zeroes the raw corners, so after erosion and
	// normalization they must still classify as water or shore.
	centerMean := (w.Elevation.At(3, 3) + w.Elevation.At(4, 3) +
		w.Elevation.At(3, 4) + w.Elevation.At(4, 4)) / 4
	for _, c := range [4][2]int{{0, 0}, {7, 0}, {0, 7}, {7, 7}} {
		label := w.Biomes.At(c[0], c[1])
		if label != "ocean" && label != "beach" {
			t.Fatalf("corner (%d,%d) biome: got=%q want ocean or beach", c[0], c[1], label)
		}
		if corner := w.Elevation.At(c[0], c[1]); corner >= centerMean {
			t.Fatalf("corner (%d,%d) not below center mean: corner=%v center=%v", c[0], c[1], corner, centerMean)
		}
	}
}

func TestGeneratePOIPartialStillReturnsWorld(t *testing.T) {
	// A tiny grid cannot host many placements; the world must still be
	// complete alongside the sentinel.
	w, err := Generate(GenerationConfig{Width: 2, Height: 2, Seed: "9", POICount: 50})
	if !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("expected ErrResourceExhausted, got %v", err)
	}
	if len(w.Biomes.Labels) != 4 {
		t.Fatalf("world incomplete: %d biome cells", len(w.Biomes.Labels))
	}
}

func TestSeedValueNumeric(t *testing.T) {
	if got := SeedValue("42"); got != 42 {
		t.Fatalf("numeric seed: got=%d want=42", got)
	}
	if got := SeedValue("-7"); got != -7 {
		t.Fatalf("negative numeric seed: got=%d want=-7", got)
	}
}

func TestSeedValueStringStable(t *testing.T) {
	a := SeedValue("glacier")
	b := SeedValue("glacier")
	if a != b {
		t.Fatalf("string seed not stable: %d vs %d", a, b)
	}
	if a == SeedValue("tundra") {
		t.Fatalf("distinct strings hashed to the same seed")
	}
}
