package memory

import (
	"context"
	"sort"

	"worldforge/internal/app/ports"
)

type WorldRepo struct {
	store *Store
}

func NewWorldRepo(store *Store) WorldRepo {
	return WorldRepo{store: store}
}

func (r WorldRepo) Save(_ context.Context, doc ports.WorldDocument) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.worlds[doc.ID] = doc
	return nil
}

func (r WorldRepo) Get(_ context.Context, worldID string) (ports.WorldDocument, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	doc, ok := r.store.worlds[worldID]
	if !ok {
		return ports.WorldDocument{}, ports.ErrNotFound
	}
	return doc, nil
}

func (r WorldRepo) List(_ context.Context) ([]ports.WorldSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]ports.WorldSummary, 0, len(r.store.worlds))
	for _, doc := range r.store.worlds {
		out = append(out, ports.WorldSummary{
			ID:        doc.ID,
			Width:     doc.Config.Width,
			Height:    doc.Config.Height,
			Seed:      doc.Config.Seed,
			CreatedAt: doc.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r WorldRepo) Delete(_ context.Context, worldID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.worlds[worldID]; !ok {
		return ports.ErrNotFound
	}
	delete(r.store.worlds, worldID)
	return nil
}
