package lore

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"worldforge/internal/app/ports"
	"worldforge/internal/domain/codex"
)

var ErrInvalidRequest = errors.New("invalid lore request")

// UseCase generates world mythology and maintains the historical timeline.
type UseCase struct {
	Worlds    ports.WorldRepository
	Lore      ports.LoreRepository
	Timeline  ports.TimelineRepository
	Events    ports.EventRepository
	Broadcast ports.Broadcaster
	NewID     func() string
	Now       func() time.Time
}

type GenerateRequest struct {
	WorldID string
	Type    string
	Themes  []string
}

func (u UseCase) Generate(ctx context.Context, req GenerateRequest) (ports.LoreRecord, error) {
	if req.WorldID == "" {
		return ports.LoreRecord{}, ErrInvalidRequest
	}
	if req.Type == "" {
		req.Type = "creation_myth"
	}
	doc, err := u.Worlds.Get(ctx, req.WorldID)
	if err != nil {
		return ports.LoreRecord{}, err
	}

	rng := rand.New(rand.NewSource(doc.SeedValue + int64(len(req.Type)) + u.Now().UnixNano()))
	record := ports.LoreRecord{
		ID:        fmt.Sprintf("lore_%s", u.NewID()),
		WorldID:   req.WorldID,
		Type:      req.Type,
		Title:     codex.LoreTitle(rng, req.Type),
		Content:   codex.LoreContent(rng, req.Type, req.Themes),
		Themes:    req.Themes,
		CreatedAt: u.Now(),
	}
	if err := u.Lore.Save(ctx, record); err != nil {
		return ports.LoreRecord{}, err
	}

	payload := map[string]any{
		"world_id":  req.WorldID,
		"lore_id":   record.ID,
		"lore_type": req.Type,
		"title":     record.Title,
	}
	_ = u.Events.Append(ctx, []ports.ChangeEvent{{
		WorldID:    req.WorldID,
		Type:       "lore_created",
		Payload:    payload,
		OccurredAt: u.Now(),
	}})
	if u.Broadcast != nil {
		u.Broadcast.Broadcast("lore_created", payload)
	}
	return record, nil
}

func (u UseCase) List(ctx context.Context, worldID, loreType string) ([]ports.LoreRecord, error) {
	if worldID == "" {
		return nil, ErrInvalidRequest
	}
	return u.Lore.ListByWorld(ctx, worldID, loreType)
}

type EventRequest struct {
	WorldID     string
	Type        string
	Description string
	Date        string
}

// AddEvent records a historical event on the timeline. Events without a date
// get an invented one so the timeline stays sortable.
func (u UseCase) AddEvent(ctx context.Context, req EventRequest) (ports.TimelineEntry, error) {
	if req.WorldID == "" || req.Description == "" {
		return ports.TimelineEntry{}, ErrInvalidRequest
	}
	if req.Type == "" {
		req.Type = "discovery"
	}
	doc, err := u.Worlds.Get(ctx, req.WorldID)
	if err != nil {
		return ports.TimelineEntry{}, err
	}
	if req.Date == "" {
		rng := rand.New(rand.NewSource(doc.SeedValue + u.Now().UnixNano()))
		req.Date = codex.EventDate(rng)
	}

	entry, err := u.Timeline.Append(ctx, ports.TimelineEntry{
		WorldID:     req.WorldID,
		Type:        req.Type,
		Description: req.Description,
		Date:        req.Date,
		CreatedAt:   u.Now(),
	})
	if err != nil {
		return ports.TimelineEntry{}, err
	}

	payload := map[string]any{
		"world_id":    req.WorldID,
		"event_type":  req.Type,
		"description": req.Description,
		"date":        entry.Date,
	}
	_ = u.Events.Append(ctx, []ports.ChangeEvent{{
		WorldID:    req.WorldID,
		Type:       "historical_event_added",
		Payload:    payload,
		OccurredAt: u.Now(),
	}})
	if u.Broadcast != nil {
		u.Broadcast.Broadcast("historical_event_added", payload)
	}
	return entry, nil
}

func (u UseCase) TimelineFor(ctx context.Context, worldID string) ([]ports.TimelineEntry, error) {
	if worldID == "" {
		return nil, ErrInvalidRequest
	}
	return u.Timeline.ListByWorld(ctx, worldID)
}
