package region

import (
	"context"
	"errors"
	"time"

	"worldforge/internal/app/ports"
	"worldforge/internal/domain/terrain"
)

var (
	ErrInvalidRequest = errors.New("invalid region request")
	ErrOutOfBounds    = errors.New("region coordinates outside world bounds")
)

// UseCase reads and annotates individual grid cells. Region rows are
// materialized on first access from the stored fields.
type UseCase struct {
	Worlds    ports.WorldRepository
	Regions   ports.RegionRepository
	Events    ports.EventRepository
	Broadcast ports.Broadcaster
	Now       func() time.Time
}

func (u UseCase) Get(ctx context.Context, worldID string, x, y int) (ports.RegionRecord, error) {
	doc, err := u.loadWorld(ctx, worldID, x, y)
	if err != nil {
		return ports.RegionRecord{}, err
	}
	record, err := u.Regions.Get(ctx, worldID, x, y)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return ports.RegionRecord{}, err
	}
	record = ports.RegionRecord{
		WorldID:   worldID,
		X:         x,
		Y:         y,
		Biome:     doc.Biomes.At(x, y),
		Elevation: doc.Elevation.At(x, y),
	}
	if err := u.Regions.Save(ctx, record); err != nil {
		return ports.RegionRecord{}, err
	}
	return record, nil
}

type NameRequest struct {
	WorldID string
	X       int
	Y       int
	Name    string
}

func (u UseCase) Name(ctx context.Context, req NameRequest) (ports.RegionRecord, error) {
	if req.Name == "" {
		return ports.RegionRecord{}, ErrInvalidRequest
	}
	record, err := u.Get(ctx, req.WorldID, req.X, req.Y)
	if err != nil {
		return ports.RegionRecord{}, err
	}
	record.Name = req.Name
	record.Discovered = true
	if err := u.Regions.Save(ctx, record); err != nil {
		return ports.RegionRecord{}, err
	}
	u.notify(ctx, req.WorldID, "region_named", map[string]any{
		"world_id": req.WorldID,
		"x":        req.X,
		"y":        req.Y,
		"name":     req.Name,
		"biome":    record.Biome,
	})
	return record, nil
}

// BatchName names several regions in one call, skipping entries without a
// name rather than failing the batch.
func (u UseCase) BatchName(ctx context.Context, worldID string, entries []NameRequest) ([]ports.RegionRecord, error) {
	out := make([]ports.RegionRecord, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		e.WorldID = worldID
		record, err := u.Name(ctx, e)
		if err != nil {
			return out, err
		}
		out = append(out, record)
	}
	return out, nil
}

// Describe generates the region's flavor text from its biome rule, marks it
// explored, and returns the text. Wording is deterministic for a fixed world
// seed and position.
func (u UseCase) Describe(ctx context.Context, worldID string, x, y int) (string, error) {
	doc, err := u.loadWorld(ctx, worldID, x, y)
	if err != nil {
		return "", err
	}
	record, err := u.Get(ctx, worldID, x, y)
	if err != nil {
		return "", err
	}

	rule, ok := terrain.RuleByLabel(record.Biome)
	if !ok {
		return "", ErrInvalidRequest
	}
	name := record.Name
	if name == "" {
		name = "the unnamed reaches"
	}
	variant := int(doc.SeedValue) + x*31 + y*17
	description := rule.Describe(name, variant)

	record.Description = description
	record.Explored = true
	if err := u.Regions.Save(ctx, record); err != nil {
		return "", err
	}
	u.notify(ctx, worldID, "region_described", map[string]any{
		"world_id": worldID,
		"x":        x,
		"y":        y,
		"biome":    record.Biome,
	})
	return description, nil
}

func (u UseCase) loadWorld(ctx context.Context, worldID string, x, y int) (ports.WorldDocument, error) {
	if worldID == "" {
		return ports.WorldDocument{}, ErrInvalidRequest
	}
	doc, err := u.Worlds.Get(ctx, worldID)
	if err != nil {
		return ports.WorldDocument{}, err
	}
	if x < 0 || x >= doc.Config.Width || y < 0 || y >= doc.Config.Height {
		return ports.WorldDocument{}, ErrOutOfBounds
	}
	return doc, nil
}

func (u UseCase) notify(ctx context.Context, worldID, eventType string, payload map[string]any) {
	_ = u.Events.Append(ctx, []ports.ChangeEvent{{
		WorldID:    worldID,
		Type:       eventType,
		Payload:    payload,
		OccurredAt: u.Now(),
	}})
	if u.Broadcast != nil {
		u.Broadcast.Broadcast(eventType, payload)
	}
}
