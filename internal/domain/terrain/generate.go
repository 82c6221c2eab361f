package terrain

import (
	"errors"
	"hash/fnv"
	"strconv"
)

var (
	ErrInvalidDimensions = errors.New("terrain: width and height must be positive")
	ErrInvalidOctaves    = errors.New("terrain: octave count must be positive")
	// ErrResourceExhausted is non-fatal: the sampler returns as many
	// placements as the grid supports alongside it.
	ErrResourceExhausted = errors.New("terrain: requested placements exceed selectable cells")
)

const (
	DefaultOctaves       = 6
	DefaultPersistence   = 0.5
	DefaultErosionPasses = 1
	DefaultPOICount      = 10
)

// GenerationConfig is immutable once handed to Generate. Zero values for
// Octaves, Persistence, ErosionPasses and POICount select defaults; negative
// values are rejected by Validate.
type GenerationConfig struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Seed          string  `json:"seed"`
	Octaves       int     `json:"octaves"`
	Persistence   float64 `json:"persistence"`
	ErosionPasses int     `json:"erosion_passes"`
	IslandMode    bool    `json:"island_mode"`
	POICount      int     `json:"poi_count"`
}

func (c GenerationConfig) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return ErrInvalidDimensions
	}
	if c.Octaves < 0 {
		return ErrInvalidOctaves
	}
	return nil
}

func (c GenerationConfig) withDefaults() GenerationConfig {
	if c.Octaves == 0 {
		c.Octaves = DefaultOctaves
	}
	if c.Persistence == 0 {
		c.Persistence = DefaultPersistence
	}
	if c.ErosionPasses == 0 {
		c.ErosionPasses = DefaultErosionPasses
	}
	if c.POICount == 0 {
		c.POICount = DefaultPOICount
	}
	return c
}

// SeedValue turns a seed string into the integer fed to the noise and
// sampling sources. Numeric strings are taken verbatim so "42" always means
// 42; anything else is hashed.
func SeedValue(seed string) int64 {
	if n, err := strconv.ParseInt(seed, 10, 64); err == nil {
		return n
	}
	h := fnv.New64a()
	h.Write([]byte(seed))
	return int64(h.Sum64())
}

// World is the immutable output of one generation call.
type World struct {
	Config    GenerationConfig  `json:"config"`
	SeedValue int64             `json:"seed_value"`
	Elevation ScalarField       `json:"elevation"`
	Moisture  ScalarField       `json:"moisture"`
	Biomes    BiomeGrid         `json:"biomes"`
	POIs      []PointOfInterest `json:"pois"`
}

// Generate runs the full pipeline: elevation noise, erosion, normalization,
// moisture, biome classification and POI placement. It is pure and holds no
// shared state, so concurrent calls need no coordination. The only non-nil
// error alongside a usable World is ErrResourceExhausted.
func Generate(cfg GenerationConfig) (World, error) {
	if err := cfg.Validate(); err != nil {
		return World{}, err
	}
	cfg = cfg.withDefaults()
	seed := SeedValue(cfg.Seed)

	elevation := noiseField(cfg.Width, cfg.Height, seed, cfg.Octaves, cfg.Persistence, cfg.IslandMode).
		Eroded(cfg.ErosionPasses).
		Normalized()
	moisture := moistureField(elevation, seed)
	biomes := ClassifyFields(elevation, moisture)
	pois, err := SamplePOIs(biomes, cfg.POICount, seed)

	return World{
		Config:    cfg,
		SeedValue: seed,
		Elevation: elevation,
		Moisture:  moisture,
		Biomes:    biomes,
		POIs:      pois,
	}, err
}
