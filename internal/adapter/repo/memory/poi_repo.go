package memory

import (
	"context"
	"sort"
	"strings"

	"worldforge/internal/app/ports"
)

type POIRepo struct {
	store *Store
}

func NewPOIRepo(store *Store) POIRepo {
	return POIRepo{store: store}
}

func (r POIRepo) Save(_ context.Context, record ports.POIRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.pois[poiKey(record.WorldID, record.ID)] = record
	return nil
}

func (r POIRepo) Get(_ context.Context, worldID, poiID string) (ports.POIRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	record, ok := r.store.pois[poiKey(worldID, poiID)]
	if !ok {
		return ports.POIRecord{}, ports.ErrNotFound
	}
	return record, nil
}

func (r POIRepo) ListByWorld(_ context.Context, worldID string) ([]ports.POIRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []ports.POIRecord{}
	for _, record := range r.store.pois {
		if record.WorldID == worldID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r POIRepo) CountByWorld(ctx context.Context, worldID string) (int, error) {
	records, err := r.ListByWorld(ctx, worldID)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (r POIRepo) DeleteByWorld(_ context.Context, worldID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for key := range r.store.pois {
		if strings.HasPrefix(key, worldID+"::") {
			delete(r.store.pois, key)
		}
	}
	return nil
}
