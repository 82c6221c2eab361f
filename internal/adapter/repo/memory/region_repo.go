package memory

import (
	"context"
	"strings"

	"worldforge/internal/app/ports"
)

type RegionRepo struct {
	store *Store
}

func NewRegionRepo(store *Store) RegionRepo {
	return RegionRepo{store: store}
}

func (r RegionRepo) Get(_ context.Context, worldID string, x, y int) (ports.RegionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	record, ok := r.store.regions[regionKey(worldID, x, y)]
	if !ok {
		return ports.RegionRecord{}, ports.ErrNotFound
	}
	return record, nil
}

func (r RegionRepo) Save(_ context.Context, record ports.RegionRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.regions[regionKey(record.WorldID, record.X, record.Y)] = record
	return nil
}

func (r RegionRepo) CountNamed(_ context.Context, worldID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	n := 0
	for _, record := range r.store.regions {
		if record.WorldID == worldID && record.Name != "" {
			n++
		}
	}
	return n, nil
}

func (r RegionRepo) DeleteByWorld(_ context.Context, worldID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for key := range r.store.regions {
		if strings.HasPrefix(key, worldID+"::") {
			delete(r.store.regions, key)
		}
	}
	return nil
}
