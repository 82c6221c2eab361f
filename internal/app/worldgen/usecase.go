package worldgen

import (
	"context"
	"errors"
	"strconv"
	"time"

	"worldforge/internal/app/ports"
	"worldforge/internal/domain/terrain"
)

var ErrInvalidRequest = errors.New("invalid world request")

const (
	defaultWidth  = 64
	defaultHeight = 64
)

// UseCase owns the world lifecycle: generation, lookup, statistics, deletion.
type UseCase struct {
	Worlds    ports.WorldRepository
	Regions   ports.RegionRepository
	POIs      ports.POIRepository
	Lore      ports.LoreRepository
	Timeline  ports.TimelineRepository
	Events    ports.EventRepository
	TxManager ports.TxManager
	Broadcast ports.Broadcaster
	Metrics   ports.GenerationMetrics
	NewID     func() string
	Now       func() time.Time
}

type CreateRequest struct {
	Width      int
	Height     int
	Seed       string
	Octaves    int
	IslandMode bool
	POICount   int
}

type CreateResponse struct {
	WorldID string `json:"world_id"`
	// POIsTruncated reports that fewer placements than requested were
	// possible; the world is still complete.
	POIsTruncated bool           `json:"pois_truncated,omitempty"`
	BiomeCounts   map[string]int `json:"biome_counts"`
}

func (u UseCase) Create(ctx context.Context, req CreateRequest) (CreateResponse, error) {
	cfg := terrain.GenerationConfig{
		Width:      req.Width,
		Height:     req.Height,
		Seed:       req.Seed,
		Octaves:    req.Octaves,
		IslandMode: req.IslandMode,
		POICount:   req.POICount,
	}
	if cfg.Width == 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = defaultHeight
	}
	if cfg.Seed == "" {
		cfg.Seed = strconv.FormatInt(u.Now().UnixNano(), 10)
	}

	world, err := terrain.Generate(cfg)
	truncated := errors.Is(err, terrain.ErrResourceExhausted)
	if err != nil && !truncated {
		if u.Metrics != nil {
			u.Metrics.RecordFailure()
		}
		return CreateResponse{}, err
	}

	doc := ports.WorldDocument{
		ID:        u.NewID(),
		Config:    world.Config,
		SeedValue: world.SeedValue,
		Elevation: world.Elevation,
		Moisture:  world.Moisture,
		Biomes:    world.Biomes,
		Mesh:      terrain.BuildMesh(world.Elevation, world.Biomes),
		POIs:      world.POIs,
		CreatedAt: u.Now(),
	}
	if err := u.Worlds.Save(ctx, doc); err != nil {
		return CreateResponse{}, err
	}

	payload := map[string]any{
		"world_id": doc.ID,
		"width":    doc.Config.Width,
		"height":   doc.Config.Height,
		"seed":     doc.Config.Seed,
	}
	if err := u.Events.Append(ctx, []ports.ChangeEvent{{
		WorldID:    doc.ID,
		Type:       "world_created",
		Payload:    payload,
		OccurredAt: u.Now(),
	}}); err != nil {
		return CreateResponse{}, err
	}
	if u.Broadcast != nil {
		u.Broadcast.Broadcast("world_created", payload)
	}
	if u.Metrics != nil {
		u.Metrics.RecordWorldCreated()
	}

	return CreateResponse{
		WorldID:       doc.ID,
		POIsTruncated: truncated,
		BiomeCounts:   world.Biomes.Distribution(),
	}, nil
}

func (u UseCase) Get(ctx context.Context, worldID string) (ports.WorldDocument, error) {
	if worldID == "" {
		return ports.WorldDocument{}, ErrInvalidRequest
	}
	return u.Worlds.Get(ctx, worldID)
}

func (u UseCase) List(ctx context.Context) ([]ports.WorldSummary, error) {
	return u.Worlds.List(ctx)
}

// Statistics aggregates biome distribution with the annotation counters.
type Statistics struct {
	BiomeDistribution map[string]int `json:"biome_distribution"`
	POICount          int            `json:"poi_count"`
	NamedRegions      int            `json:"named_regions"`
	LoreEntries       int            `json:"lore_entries"`
}

func (u UseCase) Stats(ctx context.Context, worldID string) (Statistics, error) {
	doc, err := u.Get(ctx, worldID)
	if err != nil {
		return Statistics{}, err
	}
	pois, err := u.POIs.CountByWorld(ctx, worldID)
	if err != nil {
		return Statistics{}, err
	}
	named, err := u.Regions.CountNamed(ctx, worldID)
	if err != nil {
		return Statistics{}, err
	}
	lore, err := u.Lore.CountByWorld(ctx, worldID)
	if err != nil {
		return Statistics{}, err
	}
	return Statistics{
		BiomeDistribution: doc.Biomes.Distribution(),
		POICount:          pois,
		NamedRegions:      named,
		LoreEntries:       lore,
	}, nil
}

// Delete removes a world and everything hanging off it in one transaction.
func (u UseCase) Delete(ctx context.Context, worldID string) error {
	if worldID == "" {
		return ErrInvalidRequest
	}
	if _, err := u.Worlds.Get(ctx, worldID); err != nil {
		return err
	}
	return u.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := u.Events.DeleteByWorld(ctx, worldID); err != nil {
			return err
		}
		if err := u.POIs.DeleteByWorld(ctx, worldID); err != nil {
			return err
		}
		if err := u.Regions.DeleteByWorld(ctx, worldID); err != nil {
			return err
		}
		if err := u.Lore.DeleteByWorld(ctx, worldID); err != nil {
			return err
		}
		if err := u.Timeline.DeleteByWorld(ctx, worldID); err != nil {
			return err
		}
		return u.Worlds.Delete(ctx, worldID)
	})
}
