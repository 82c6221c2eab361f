package terrain

import (
	"fmt"
	"math/rand"
)

// PointOfInterest is a placement produced by the weighted sampler. IDs are
// unique within a world.
type PointOfInterest struct {
	ID     string  `json:"id"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Biome  string  `json:"biome"`
	Weight float64 `json:"weight"`
}

// SamplePOIs draws count distinct cells, each with probability proportional
// to its biome suitability weight among the cells not yet chosen. Cells whose
// biome weight is zero are never selected. When count exceeds the number of
// selectable cells the available placements are returned together with
// ErrResourceExhausted; partial results are still usable.
func SamplePOIs(grid BiomeGrid, count int, seed int64) ([]PointOfInterest, error) {
	rng := rand.New(rand.NewSource(seed))

	weights := make([]float64, len(grid.Labels))
	total := 0.0
	available := 0
	for i, label := range grid.Labels {
		rule, ok := RuleByLabel(label)
		if !ok {
			continue
		}
		weights[i] = rule.Weight
		total += rule.Weight
		if rule.Weight > 0 {
			available++
		}
	}

	out := make([]PointOfInterest, 0, count)
	for len(out) < count && available > 0 {
		r := rng.Float64() * total
		picked := -1
		for i, w := range weights {
			if w == 0 {
				continue
			}
			r -= w
			if r < 0 {
				picked = i
				break
			}
		}
		if picked < 0 {
			// Float accumulation can leave r marginally above the last
			// cumulative weight; take the final nonzero cell.
			for i := len(weights) - 1; i >= 0; i-- {
				if weights[i] > 0 {
					picked = i
					break
				}
			}
		}

		x, y := picked%grid.Width, picked/grid.Width
		out = append(out, PointOfInterest{
			ID:     fmt.Sprintf("poi_%d", len(out)+1),
			X:      x,
			Y:      y,
			Biome:  grid.Labels[picked],
			Weight: weights[picked],
		})
		total -= weights[picked]
		weights[picked] = 0
		available--
	}

	if len(out) < count {
		return out, ErrResourceExhausted
	}
	return out, nil
}
