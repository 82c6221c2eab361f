package terrain

import "fmt"

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// BiomeRule maps an (elevation, moisture) region to a biome label. Rules are
// evaluated in catalog order and the first match wins, so ranges may overlap.
type BiomeRule struct {
	Label    string  `json:"label"`
	Elev     Range   `json:"elevation"`
	Moist    Range   `json:"moisture"`
	Weight   float64 `json:"weight"`
	Color    string  `json:"color"`
	Template string  `json:"-"`
}

// SeaLevel is the elevation at or below which a cell counts as water for
// moisture bias purposes. It matches the upper bound of the ocean rule.
const SeaLevel = 0.10

// biomeCatalog is the ordered classification table, constructed once and
// never mutated. Ocean and beach are keyed on low elevation and must come
// before every land rule so low-lying cells are never classified as land.
// The final rule spans the whole domain so classification always succeeds.
var biomeCatalog = []BiomeRule{
	{Label: "ocean", Elev: Range{0.00, 0.10}, Moist: Range{0, 1}, Weight: 0, Color: "#1E88E5",
		Template: "The waters of %s stretch %s toward the horizon."},
	{Label: "beach", Elev: Range{0.10, 0.15}, Moist: Range{0, 1}, Weight: 0.5, Color: "#FFF176",
		Template: "The shore of %s lies %s where land meets the sea."},
	{Label: "swamp", Elev: Range{0.15, 0.30}, Moist: Range{0.80, 1}, Weight: 1, Color: "#689F38",
		Template: "The mires of %s sprawl %s beneath a haze of midges."},
	{Label: "forest", Elev: Range{0.15, 0.50}, Moist: Range{0.60, 0.80}, Weight: 3, Color: "#4CAF50",
		Template: "The woods of %s grow %s beneath a closed canopy."},
	{Label: "jungle", Elev: Range{0.15, 0.50}, Moist: Range{0.80, 1}, Weight: 2, Color: "#2E7D32",
		Template: "The jungle of %s presses in %s, loud with unseen life."},
	{Label: "grassland", Elev: Range{0.15, 0.50}, Moist: Range{0.30, 0.60}, Weight: 4, Color: "#A5D6A7",
		Template: "The meadows of %s roll %s under an open sky."},
	{Label: "plains", Elev: Range{0.15, 0.50}, Moist: Range{0.15, 0.30}, Weight: 3, Color: "#C5E1A5",
		Template: "The flats of %s run %s, broken only by wind-bent grass."},
	{Label: "desert", Elev: Range{0.15, 0.50}, Moist: Range{0.00, 0.15}, Weight: 1, Color: "#FFD54F",
		Template: "The dunes of %s shift %s under a punishing sun."},
	{Label: "hills", Elev: Range{0.50, 0.70}, Moist: Range{0, 1}, Weight: 2, Color: "#8D6E63",
		Template: "The hills of %s rise %s in folded ridges."},
	{Label: "mountain", Elev: Range{0.70, 0.90}, Moist: Range{0, 1}, Weight: 1, Color: "#795548",
		Template: "The peaks of %s climb %s into thinning air."},
	{Label: "snow", Elev: Range{0.90, 1.00}, Moist: Range{0.30, 1}, Weight: 0.5, Color: "#FFFFFF",
		Template: "The snowfields of %s gleam %s above the treeline."},
	// Fallback: covers the full domain so Classify never fails.
	{Label: "tundra", Elev: Range{0, 1}, Moist: Range{0, 1}, Weight: 0.5, Color: "#E0E0E0",
		Template: "The tundra of %s lies %s, frozen and bare."},
}

// descriptionManners fills the second slot of a rule's description template.
// The variant index keeps wording varied across a world while staying
// deterministic for a fixed seed and position.
var descriptionManners = []string{
	"far and wide", "quiet and unbroken", "wild and untraveled", "old beyond reckoning",
}

// Describe renders the rule's description template for a named region. The
// variant is typically derived from the world seed and cell position.
func (r BiomeRule) Describe(name string, variant int) string {
	if variant < 0 {
		variant = -variant
	}
	manner := descriptionManners[variant%len(descriptionManners)]
	return fmt.Sprintf(r.Template, name, manner)
}

// Catalog returns the biome rule table in classification order. Callers must
// treat the returned slice as read-only.
func Catalog() []BiomeRule {
	return biomeCatalog
}

// RuleByLabel looks up a catalog entry by its label.
func RuleByLabel(label string) (BiomeRule, bool) {
	for _, r := range biomeCatalog {
		if r.Label == label {
			return r, true
		}
	}
	return BiomeRule{}, false
}

// Classify returns the first catalog rule whose elevation and moisture ranges
// both contain the given values. The final fallback rule guarantees a match.
func Classify(elevation, moisture float64) BiomeRule {
	for _, r := range biomeCatalog {
		if r.Elev.Contains(elevation) && r.Moist.Contains(moisture) {
			return r
		}
	}
	return biomeCatalog[len(biomeCatalog)-1]
}

// BiomeGrid holds the per-cell biome label for a world, same dimensions as
// the fields it was derived from.
type BiomeGrid struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Labels []string `json:"labels"`
}

func (g BiomeGrid) At(x, y int) string {
	return g.Labels[y*g.Width+x]
}

// ClassifyFields derives the biome grid from normalized elevation and
// moisture fields cell by cell.
func ClassifyFields(elevation, moisture ScalarField) BiomeGrid {
	g := BiomeGrid{
		Width:  elevation.Width,
		Height: elevation.Height,
		Labels: make([]string, elevation.Width*elevation.Height),
	}
	for i := range g.Labels {
		g.Labels[i] = Classify(elevation.Values[i], moisture.Values[i]).Label
	}
	return g
}

// Distribution counts cells per biome label.
func (g BiomeGrid) Distribution() map[string]int {
	out := map[string]int{}
	for _, label := range g.Labels {
		out[label]++
	}
	return out
}
