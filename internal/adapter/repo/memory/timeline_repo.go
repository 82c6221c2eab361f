package memory

import (
	"context"
	"sort"

	"worldforge/internal/app/ports"
)

type TimelineRepo struct {
	store *Store
}

func NewTimelineRepo(store *Store) TimelineRepo {
	return TimelineRepo{store: store}
}

func (r TimelineRepo) Append(_ context.Context, entry ports.TimelineEntry) (ports.TimelineEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.timelineID++
	entry.ID = r.store.timelineID
	r.store.timeline[entry.WorldID] = append(r.store.timeline[entry.WorldID], entry)
	return entry, nil
}

func (r TimelineRepo) ListByWorld(_ context.Context, worldID string) ([]ports.TimelineEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	entries := r.store.timeline[worldID]
	out := make([]ports.TimelineEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r TimelineRepo) DeleteByWorld(_ context.Context, worldID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.timeline, worldID)
	return nil
}
