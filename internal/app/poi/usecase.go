package poi

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"worldforge/internal/app/ports"
	"worldforge/internal/domain/codex"
)

var (
	ErrInvalidRequest = errors.New("invalid poi request")
	ErrOutOfBounds    = errors.New("poi coordinates outside world bounds")
)

// DetailLevel controls how much content Detail generates.
type DetailLevel string

const (
	DetailLow    DetailLevel = "low"
	DetailMedium DetailLevel = "medium"
	DetailHigh   DetailLevel = "high"
)

// UseCase manages caller-created points of interest on top of a generated
// world. Sampler-placed POIs live inside the world document; these are the
// ones added and fleshed out afterwards.
type UseCase struct {
	Worlds    ports.WorldRepository
	POIs      ports.POIRepository
	Events    ports.EventRepository
	TxManager ports.TxManager
	Broadcast ports.Broadcaster
	NewID     func() string
	Now       func() time.Time
}

type CreateRequest struct {
	WorldID string
	Type    string
	X       int
	Y       int
	Name    string
}

func (u UseCase) Create(ctx context.Context, req CreateRequest) (ports.POIRecord, error) {
	if req.WorldID == "" || req.Type == "" {
		return ports.POIRecord{}, ErrInvalidRequest
	}
	doc, err := u.Worlds.Get(ctx, req.WorldID)
	if err != nil {
		return ports.POIRecord{}, err
	}
	if req.X < 0 || req.X >= doc.Config.Width || req.Y < 0 || req.Y >= doc.Config.Height {
		return ports.POIRecord{}, ErrOutOfBounds
	}

	rng := u.rngFor(doc.SeedValue, req.X, req.Y)
	name := req.Name
	if name == "" {
		name = codex.POIName(rng, req.Type)
	}
	record := ports.POIRecord{
		ID:          fmt.Sprintf("poi_%s", u.NewID()),
		WorldID:     req.WorldID,
		Type:        req.Type,
		X:           req.X,
		Y:           req.Y,
		Name:        name,
		Biome:       doc.Biomes.At(req.X, req.Y),
		Elevation:   doc.Elevation.At(req.X, req.Y),
		Description: codex.POIDescription(rng, req.Type, name),
		NPCs:        []codex.NPC{},
		Rumors:      []string{},
		Secrets:     []string{},
		CreatedAt:   u.Now(),
	}

	payload := map[string]any{
		"world_id": req.WorldID,
		"poi_id":   record.ID,
		"poi_type": req.Type,
		"x":        req.X,
		"y":        req.Y,
		"name":     name,
	}
	err = u.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := u.POIs.Save(ctx, record); err != nil {
			return err
		}
		return u.Events.Append(ctx, []ports.ChangeEvent{{
			WorldID:    req.WorldID,
			Type:       "poi_created",
			Payload:    payload,
			OccurredAt: u.Now(),
		}})
	})
	if err != nil {
		return ports.POIRecord{}, err
	}
	if u.Broadcast != nil {
		u.Broadcast.Broadcast("poi_created", payload)
	}
	return record, nil
}

func (u UseCase) Get(ctx context.Context, worldID, poiID string) (ports.POIRecord, error) {
	if worldID == "" || poiID == "" {
		return ports.POIRecord{}, ErrInvalidRequest
	}
	return u.POIs.Get(ctx, worldID, poiID)
}

func (u UseCase) List(ctx context.Context, worldID string) ([]ports.POIRecord, error) {
	if worldID == "" {
		return nil, ErrInvalidRequest
	}
	return u.POIs.ListByWorld(ctx, worldID)
}

// UpdateRequest carries the mutable POI fields; nil pointers leave the stored
// value untouched.
type UpdateRequest struct {
	WorldID    string
	POIID      string
	Name       *string
	Type       *string
	Discovered *bool
	Explored   *bool
}

func (u UseCase) Update(ctx context.Context, req UpdateRequest) (ports.POIRecord, error) {
	record, err := u.Get(ctx, req.WorldID, req.POIID)
	if err != nil {
		return ports.POIRecord{}, err
	}
	if req.Name != nil {
		record.Name = *req.Name
	}
	if req.Type != nil {
		record.Type = *req.Type
	}
	if req.Discovered != nil {
		record.Discovered = *req.Discovered
	}
	if req.Explored != nil {
		record.Explored = *req.Explored
	}
	if err := u.POIs.Save(ctx, record); err != nil {
		return ports.POIRecord{}, err
	}
	if u.Broadcast != nil {
		u.Broadcast.Broadcast("poi_updated", map[string]any{
			"world_id": req.WorldID,
			"poi_id":   req.POIID,
		})
	}
	return record, nil
}

// Detail fills a POI with generated NPCs, rumors and secrets. Higher levels
// produce more of each; medium is the default for unknown levels.
func (u UseCase) Detail(ctx context.Context, worldID, poiID string, level DetailLevel) (ports.POIRecord, error) {
	record, err := u.Get(ctx, worldID, poiID)
	if err != nil {
		return ports.POIRecord{}, err
	}

	npcCount, rumorCount, secretCount := detailCounts(level)
	doc, err := u.Worlds.Get(ctx, worldID)
	if err != nil {
		return ports.POIRecord{}, err
	}
	rng := u.rngFor(doc.SeedValue, record.X, record.Y)

	record.NPCs = make([]codex.NPC, 0, npcCount)
	for i := 0; i < npcCount; i++ {
		record.NPCs = append(record.NPCs, codex.GenerateNPC(rng, record.Type))
	}
	record.Rumors = make([]string, 0, rumorCount)
	for i := 0; i < rumorCount; i++ {
		record.Rumors = append(record.Rumors, codex.GenerateRumor(rng, record.Type, record.Name))
	}
	record.Secrets = make([]string, 0, secretCount)
	for i := 0; i < secretCount; i++ {
		record.Secrets = append(record.Secrets, codex.GenerateSecret(rng, record.Type))
	}
	record.Explored = true

	if err := u.POIs.Save(ctx, record); err != nil {
		return ports.POIRecord{}, err
	}
	if u.Broadcast != nil {
		u.Broadcast.Broadcast("poi_detailed", map[string]any{
			"world_id": worldID,
			"poi_id":   poiID,
			"level":    string(level),
		})
	}
	return record, nil
}

func detailCounts(level DetailLevel) (npcs, rumors, secrets int) {
	switch level {
	case DetailHigh:
		return 3, 5, 2
	case DetailLow:
		return 1, 1, 0
	default:
		return 2, 3, 1
	}
}

func (u UseCase) rngFor(seed int64, x, y int) *rand.Rand {
	return rand.New(rand.NewSource(seed ^ int64(x)*73856093 ^ int64(y)*19349663))
}
