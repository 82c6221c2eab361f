package memory

import (
	"fmt"
	"sync"

	"worldforge/internal/app/ports"
)

// Store backs the in-memory repositories. Every repo method takes mu itself,
// so the store is safe under concurrent request handling; txMu additionally
// serializes multi-repo transactions against each other.
type Store struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	worlds     map[string]ports.WorldDocument
	regions    map[string]ports.RegionRecord
	pois       map[string]ports.POIRecord
	lore       map[string]ports.LoreRecord
	timeline   map[string][]ports.TimelineEntry
	events     map[string][]ports.ChangeEvent
	timelineID int64
}

func NewStore() *Store {
	return &Store{
		worlds:   make(map[string]ports.WorldDocument),
		regions:  make(map[string]ports.RegionRecord),
		pois:     make(map[string]ports.POIRecord),
		lore:     make(map[string]ports.LoreRecord),
		timeline: make(map[string][]ports.TimelineEntry),
		events:   make(map[string][]ports.ChangeEvent),
	}
}

func regionKey(worldID string, x, y int) string {
	return fmt.Sprintf("%s::%d:%d", worldID, x, y)
}

func poiKey(worldID, poiID string) string {
	return worldID + "::" + poiID
}
