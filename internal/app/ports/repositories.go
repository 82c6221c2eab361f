package ports

import (
	"context"
	"time"

	"worldforge/internal/domain/codex"
	"worldforge/internal/domain/terrain"
)

// WorldDocument is the persisted aggregate for one generated world: the core
// generation output plus the viewer mesh and bookkeeping.
type WorldDocument struct {
	ID        string                    `json:"id"`
	Config    terrain.GenerationConfig  `json:"config"`
	SeedValue int64                     `json:"seed_value"`
	Elevation terrain.ScalarField       `json:"elevation"`
	Moisture  terrain.ScalarField       `json:"moisture"`
	Biomes    terrain.BiomeGrid         `json:"biomes"`
	Mesh      terrain.Mesh              `json:"mesh"`
	POIs      []terrain.PointOfInterest `json:"pois"`
	CreatedAt time.Time                 `json:"created_at"`
}

type WorldSummary struct {
	ID        string    `json:"id"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Seed      string    `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}

type WorldRepository interface {
	Save(ctx context.Context, doc WorldDocument) error
	Get(ctx context.Context, worldID string) (WorldDocument, error)
	List(ctx context.Context) ([]WorldSummary, error)
	Delete(ctx context.Context, worldID string) error
}

// RegionRecord is the caller-facing annotation layer over a grid cell.
// Records are materialized lazily: a region only gets a row once it has been
// looked at, named or described.
type RegionRecord struct {
	WorldID     string  `json:"world_id"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Biome       string  `json:"biome"`
	Elevation   float64 `json:"elevation"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Discovered  bool    `json:"discovered"`
	Explored    bool    `json:"explored"`
}

type RegionRepository interface {
	Get(ctx context.Context, worldID string, x, y int) (RegionRecord, error)
	Save(ctx context.Context, record RegionRecord) error
	CountNamed(ctx context.Context, worldID string) (int, error)
	DeleteByWorld(ctx context.Context, worldID string) error
}

// POIRecord is a placed point of interest together with its generated detail.
type POIRecord struct {
	ID          string      `json:"id"`
	WorldID     string      `json:"world_id"`
	Type        string      `json:"type"`
	X           int         `json:"x"`
	Y           int         `json:"y"`
	Name        string      `json:"name"`
	Biome       string      `json:"biome"`
	Elevation   float64     `json:"elevation"`
	Description string      `json:"description"`
	NPCs        []codex.NPC `json:"npcs"`
	Rumors      []string    `json:"rumors"`
	Secrets     []string    `json:"secrets"`
	Discovered  bool        `json:"discovered"`
	Explored    bool        `json:"explored"`
	CreatedAt   time.Time   `json:"created_at"`
}

type POIRepository interface {
	Save(ctx context.Context, record POIRecord) error
	Get(ctx context.Context, worldID, poiID string) (POIRecord, error)
	ListByWorld(ctx context.Context, worldID string) ([]POIRecord, error)
	CountByWorld(ctx context.Context, worldID string) (int, error)
	DeleteByWorld(ctx context.Context, worldID string) error
}

type LoreRecord struct {
	ID        string    `json:"id"`
	WorldID   string    `json:"world_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Themes    []string  `json:"themes"`
	CreatedAt time.Time `json:"created_at"`
}

type LoreRepository interface {
	Save(ctx context.Context, record LoreRecord) error
	// ListByWorld filters by loreType when it is non-empty.
	ListByWorld(ctx context.Context, worldID, loreType string) ([]LoreRecord, error)
	CountByWorld(ctx context.Context, worldID string) (int, error)
	DeleteByWorld(ctx context.Context, worldID string) error
}

// TimelineEntry is one dated historical event on a world's timeline.
type TimelineEntry struct {
	ID          int64     `json:"id"`
	WorldID     string    `json:"world_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

type TimelineRepository interface {
	Append(ctx context.Context, entry TimelineEntry) (TimelineEntry, error)
	ListByWorld(ctx context.Context, worldID string) ([]TimelineEntry, error)
	DeleteByWorld(ctx context.Context, worldID string) error
}

// ChangeEvent is the audit-log record behind the live broadcast stream.
type ChangeEvent struct {
	WorldID    string         `json:"world_id"`
	Type       string         `json:"type"`
	Payload    map[string]any `json:"payload"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type EventRepository interface {
	Append(ctx context.Context, events []ChangeEvent) error
	ListByWorld(ctx context.Context, worldID string, limit int) ([]ChangeEvent, error)
	DeleteByWorld(ctx context.Context, worldID string) error
}
