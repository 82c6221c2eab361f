package terrain

import opensimplex "github.com/ojrac/opensimplex-go"

const (
	// moistureSeedOffset keeps the moisture noise layer independent from the
	// elevation layer while staying derived from the same world seed.
	moistureSeedOffset = 1

	moistureFrequency = 4.0

	// seaDecayRadius is the grid distance over which proximity to water stops
	// contributing moisture.
	seaDecayRadius = 8

	moistureNoiseShare = 0.65
	moistureBiasShare  = 0.35
)

// moistureField derives the second classification axis from a fresh noise
// layer blended with a sea-proximity bias, renormalized to [0,1].
func moistureField(elevation ScalarField, seed int64) ScalarField {
	noise := opensimplex.NewNormalized(seed + moistureSeedOffset)
	bias := seaProximityBias(elevation)
	f := NewScalarField(elevation.Width, elevation.Height)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			nx := float64(x)/float64(f.Width) - 0.5
			ny := float64(y)/float64(f.Height) - 0.5
			n := noise.Eval2(nx*moistureFrequency, ny*moistureFrequency)
			f.Set(x, y, moistureNoiseShare*n+moistureBiasShare*bias.At(x, y))
		}
	}
	return f.Normalized()
}

// seaProximityBias returns a field in [0,1]: 1 on cells at or below sea
// level, decaying linearly with grid distance to the nearest such cell and
// reaching 0 at seaDecayRadius. A world with no sea cells gets zero bias.
func seaProximityBias(elevation ScalarField) ScalarField {
	const unreached = -1

	dist := make([]int, len(elevation.Values))
	queue := make([]int, 0, len(dist))
	for i, v := range elevation.Values {
		if v <= SeaLevel {
			dist[i] = 0
			queue = append(queue, i)
		} else {
			dist[i] = unreached
		}
	}

	// Multi-source BFS over orthogonal neighbors.
	w, h := elevation.Width, elevation.Height
	for head := 0; head < len(queue); head++ {
		i := queue[head]
		x, y := i%w, i/w
		next := dist[i] + 1
		if next > seaDecayRadius {
			continue
		}
		for _, n := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
			nx, ny := n[0], n[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			j := ny*w + nx
			if dist[j] == unreached {
				dist[j] = next
				queue = append(queue, j)
			}
		}
	}

	bias := NewScalarField(w, h)
	for i, d := range dist {
		if d == unreached {
			continue
		}
		bias.Values[i] = 1 - float64(d)/float64(seaDecayRadius)
	}
	return bias
}
