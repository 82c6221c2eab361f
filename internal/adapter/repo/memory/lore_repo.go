package memory

import (
	"context"
	"sort"

	"worldforge/internal/app/ports"
)

type LoreRepo struct {
	store *Store
}

func NewLoreRepo(store *Store) LoreRepo {
	return LoreRepo{store: store}
}

func (r LoreRepo) Save(_ context.Context, record ports.LoreRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.lore[record.ID] = record
	return nil
}

func (r LoreRepo) ListByWorld(_ context.Context, worldID, loreType string) ([]ports.LoreRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := []ports.LoreRecord{}
	for _, record := range r.store.lore {
		if record.WorldID != worldID {
			continue
		}
		if loreType != "" && record.Type != loreType {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r LoreRepo) CountByWorld(ctx context.Context, worldID string) (int, error) {
	records, err := r.ListByWorld(ctx, worldID, "")
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (r LoreRepo) DeleteByWorld(_ context.Context, worldID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, record := range r.store.lore {
		if record.WorldID == worldID {
			delete(r.store.lore, id)
		}
	}
	return nil
}
