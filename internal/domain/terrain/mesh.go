package terrain

import "strconv"

// meshHeightScale exaggerates elevation for the 3D viewer.
const meshHeightScale = 5.0

// Mesh holds viewer-ready geometry: interleaved xyz vertices, per-vertex rgb
// colors taken from the biome catalog, and triangle indices (two triangles
// per grid quad).
type Mesh struct {
	Vertices []float64 `json:"vertices"`
	Colors   []float64 `json:"colors"`
	Indices  []int     `json:"indices"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Scale    float64   `json:"scale"`
}

// BuildMesh converts a heightmap and its biome grid into mesh data for the
// browser renderer.
func BuildMesh(elevation ScalarField, biomes BiomeGrid) Mesh {
	rows, cols := elevation.Height, elevation.Width
	m := Mesh{
		Vertices: make([]float64, 0, rows*cols*3),
		Colors:   make([]float64, 0, rows*cols*3),
		Indices:  make([]int, 0, (rows-1)*(cols-1)*6),
		Width:    cols,
		Height:   rows,
		Scale:    meshHeightScale,
	}

	for z := 0; z < rows; z++ {
		for x := 0; x < cols; x++ {
			m.Vertices = append(m.Vertices, float64(x), elevation.At(x, z)*meshHeightScale, float64(z))
			r, g, b := biomeColor(biomes.At(x, z))
			m.Colors = append(m.Colors, r, g, b)
		}
	}

	for z := 0; z < rows-1; z++ {
		for x := 0; x < cols-1; x++ {
			m.Indices = append(m.Indices,
				z*cols+x, z*cols+x+1, (z+1)*cols+x,
				(z+1)*cols+x, z*cols+x+1, (z+1)*cols+x+1,
			)
		}
	}
	return m
}

func biomeColor(label string) (float64, float64, float64) {
	rule, ok := RuleByLabel(label)
	if !ok {
		return 0.5, 0.5, 0.5
	}
	return parseHexColor(rule.Color)
}

func parseHexColor(hex string) (float64, float64, float64) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0.5, 0.5, 0.5
	}
	n, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0.5, 0.5, 0.5
	}
	return float64(n>>16&0xFF) / 255, float64(n>>8&0xFF) / 255, float64(n&0xFF) / 255
}
