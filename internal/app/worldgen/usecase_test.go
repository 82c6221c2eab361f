package worldgen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"worldforge/internal/adapter/repo/memory"
	"worldforge/internal/app/ports"
)

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *fakeBroadcaster) Broadcast(eventType string, _ map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, eventType)
}

func newTestUseCase() (UseCase, *fakeBroadcaster) {
	store := memory.NewStore()
	broadcast := &fakeBroadcaster{}
	counter := 0
	uc := UseCase{
		Worlds:    memory.NewWorldRepo(store),
		Regions:   memory.NewRegionRepo(store),
		POIs:      memory.NewPOIRepo(store),
		Lore:      memory.NewLoreRepo(store),
		Timeline:  memory.NewTimelineRepo(store),
		Events:    memory.NewEventRepo(store),
		TxManager: memory.NewTxManager(store),
		Broadcast: broadcast,
		NewID: func() string {
			counter++
			return fmt.Sprintf("world-%d", counter)
		},
		Now: func() time.Time { return time.Unix(1700000000, 0) },
	}
	return uc, broadcast
}

func TestCreateStoresWorld(t *testing.T) {
	uc, broadcast := newTestUseCase()

	resp, err := uc.Create(context.Background(), CreateRequest{Width: 16, Height: 16, Seed: "42"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if resp.WorldID == "" {
		t.Fatalf("empty world id")
	}

	doc, err := uc.Get(context.Background(), resp.WorldID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if doc.Config.Width != 16 || doc.Config.Height != 16 {
		t.Fatalf("stored dimensions: got=%dx%d want=16x16", doc.Config.Width, doc.Config.Height)
	}
	if len(doc.Mesh.Vertices) != 16*16*3 {
		t.Fatalf("mesh vertices: got=%d want=%d", len(doc.Mesh.Vertices), 16*16*3)
	}

	total := 0
	for _, n := range resp.BiomeCounts {
		total += n
	}
	if total != 256 {
		t.Fatalf("biome counts total: got=%d want=256", total)
	}
	if len(broadcast.events) != 1 || broadcast.events[0] != "world_created" {
		t.Fatalf("broadcast events: got=%v want=[world_created]", broadcast.events)
	}
}

func TestCreateDefaultsDimensions(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.Create(context.Background(), CreateRequest{Seed: "7"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	doc, err := uc.Get(context.Background(), resp.WorldID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if doc.Config.Width != 64 || doc.Config.Height != 64 {
		t.Fatalf("default dimensions: got=%dx%d want=64x64", doc.Config.Width, doc.Config.Height)
	}
}

func TestCreateRecordsEvent(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.Create(context.Background(), CreateRequest{Width: 8, Height: 8, Seed: "1"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	events, err := uc.Events.ListByWorld(context.Background(), resp.WorldID, 10)
	if err != nil {
		t.Fatalf("ListByWorld error: %v", err)
	}
	if len(events) != 1 || events[0].Type != "world_created" {
		t.Fatalf("persisted events: got=%+v", events)
	}
}

func TestCreateTruncatedPOIs(t *testing.T) {
	uc, _ := newTestUseCase()

	// A 2x2 world cannot host 50 placements.
	resp, err := uc.Create(context.Background(), CreateRequest{Width: 2, Height: 2, Seed: "3", POICount: 50})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !resp.POIsTruncated {
		t.Fatalf("expected POIsTruncated")
	}
	if _, err := uc.Get(context.Background(), resp.WorldID); err != nil {
		t.Fatalf("truncated world not stored: %v", err)
	}
}

func TestCreateInvalidOctaves(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Create(context.Background(), CreateRequest{Width: 8, Height: 8, Octaves: -2})
	if err == nil {
		t.Fatalf("expected error for negative octaves")
	}
}

func TestGetMissingWorld(t *testing.T) {
	uc, _ := newTestUseCase()

	if _, err := uc.Get(context.Background(), "nope"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.Get(context.Background(), ""); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestListWorlds(t *testing.T) {
	uc, _ := newTestUseCase()

	for _, seed := range []string{"1", "2"} {
		if _, err := uc.Create(context.Background(), CreateRequest{Width: 8, Height: 8, Seed: seed}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	worlds, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(worlds) != 2 {
		t.Fatalf("world count: got=%d want=2", len(worlds))
	}
}

func TestStats(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.Create(context.Background(), CreateRequest{Width: 8, Height: 8, Seed: "4"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	stats, err := uc.Stats(context.Background(), resp.WorldID)
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	total := 0
	for _, n := range stats.BiomeDistribution {
		total += n
	}
	if total != 64 {
		t.Fatalf("distribution total: got=%d want=64", total)
	}
	if stats.NamedRegions != 0 || stats.LoreEntries != 0 {
		t.Fatalf("fresh world has annotations: %+v", stats)
	}
}

func TestDeleteCascades(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.Create(context.Background(), CreateRequest{Width: 8, Height: 8, Seed: "5"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := uc.Regions.Save(context.Background(), ports.RegionRecord{
		WorldID: resp.WorldID, X: 1, Y: 1, Name: "The Reach",
	}); err != nil {
		t.Fatalf("seed region: %v", err)
	}

	if err := uc.Delete(context.Background(), resp.WorldID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := uc.Get(context.Background(), resp.WorldID); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("world survived delete: %v", err)
	}
	if _, err := uc.Regions.Get(context.Background(), resp.WorldID, 1, 1); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("region survived delete: %v", err)
	}
	events, err := uc.Events.ListByWorld(context.Background(), resp.WorldID, 10)
	if err != nil {
		t.Fatalf("ListByWorld error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events survived delete: %d", len(events))
	}
}

func TestCreateConcurrently(t *testing.T) {
	uc, _ := newTestUseCase()

	var mu sync.Mutex
	counter := 0
	uc.NewID = func() string {
		mu.Lock()
		defer mu.Unlock()
		counter++
		return fmt.Sprintf("world-%d", counter)
	}

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Create(context.Background(), CreateRequest{
				Width: 8, Height: 8, Seed: fmt.Sprintf("%d", i),
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("concurrent Create %d: %v", i, err)
		}
	}
	worlds, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(worlds) != n {
		t.Fatalf("world count: got=%d want=%d", len(worlds), n)
	}
}

func TestDeleteMissingWorld(t *testing.T) {
	uc, _ := newTestUseCase()

	if err := uc.Delete(context.Background(), "nope"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
