package terrain

import (
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	// baseFrequency is how many noise cycles span the grid at octave zero.
	baseFrequency = 3.0

	perlinAlpha = 2.0
	perlinBeta  = 2.0
)

// noiseField produces the raw (unnormalized) elevation field: fractal noise
// accumulated over the requested octaves, optionally shaped into an island.
// Identical inputs always produce a bit-identical field.
func noiseField(width, height int, seed int64, octaves int, persistence float64, islandMode bool) ScalarField {
	// Single-octave primitive; the octave loop below owns the fBm summation.
	p := perlin.NewPerlin(perlinAlpha, perlinBeta, 1, seed)
	f := NewScalarField(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			nx := float64(x)/float64(width) - 0.5
			ny := float64(y)/float64(height) - 0.5
			v := fbm(p, nx*baseFrequency, ny*baseFrequency, octaves, persistence)
			// Shift from [-1,1] into [0,1] so the island falloff pulls
			// edges toward water instead of amplifying negative noise.
			v = (v + 1) / 2
			if islandMode {
				v *= islandFalloff(x, y, width, height)
			}
			f.Set(x, y, v)
		}
	}
	return f
}

// fbm sums octaves at doubling frequency and persistence-decaying amplitude,
// normalized by the accumulated amplitude so the result stays in [-1,1].
func fbm(p *perlin.Perlin, x, y float64, octaves int, persistence float64) float64 {
	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxValue := 0.0
	for i := 0; i < octaves; i++ {
		total += p.Noise2D(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxValue
}

// islandFalloff decreases monotonically with distance from the grid center:
// 1 at the center, 0 at the corners.
func islandFalloff(x, y, width, height int) float64 {
	cx := float64(width-1) / 2
	cy := float64(height-1) / 2
	if cx == 0 && cy == 0 {
		return 1
	}
	dx := (float64(x) - cx) / math.Max(cx, 0.5)
	dy := (float64(y) - cy) / math.Max(cy, 0.5)
	d2 := (dx*dx + dy*dy) / 2
	return clamp01(1 - d2)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
