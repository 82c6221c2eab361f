package memory

import (
	"context"

	"worldforge/internal/app/ports"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, events []ports.ChangeEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range events {
		r.store.events[e.WorldID] = append(r.store.events[e.WorldID], e)
	}
	return nil
}

func (r EventRepo) ListByWorld(_ context.Context, worldID string, limit int) ([]ports.ChangeEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	events := r.store.events[worldID]
	// Newest first, like the persistent implementation.
	out := make([]ports.ChangeEvent, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		out = append(out, events[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r EventRepo) DeleteByWorld(_ context.Context, worldID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.events, worldID)
	return nil
}
