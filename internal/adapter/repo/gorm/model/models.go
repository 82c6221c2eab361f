package model

import "time"

// World stores the generated aggregate as a JSON document; the grid payloads
// are large and only ever read back whole.
type World struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Seed      string    `gorm:"column:seed"`
	Width     int32     `gorm:"column:width"`
	Height    int32     `gorm:"column:height"`
	Data      []byte    `gorm:"column:data"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (World) TableName() string { return "worlds" }

type Region struct {
	WorldID     string    `gorm:"column:world_id;primaryKey"`
	X           int32     `gorm:"column:x;primaryKey"`
	Y           int32     `gorm:"column:y;primaryKey"`
	Biome       string    `gorm:"column:biome"`
	Elevation   float64   `gorm:"column:elevation"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Discovered  bool      `gorm:"column:discovered"`
	Explored    bool      `gorm:"column:explored"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Region) TableName() string { return "world_regions" }

type POI struct {
	ID        string    `gorm:"column:id;primaryKey"`
	WorldID   string    `gorm:"column:world_id;primaryKey"`
	Data      []byte    `gorm:"column:data"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (POI) TableName() string { return "world_pois" }

type Lore struct {
	ID        string    `gorm:"column:id;primaryKey"`
	WorldID   string    `gorm:"column:world_id"`
	Type      string    `gorm:"column:type"`
	Title     string    `gorm:"column:title"`
	Content   string    `gorm:"column:content"`
	Themes    []byte    `gorm:"column:themes"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Lore) TableName() string { return "world_lore" }

type TimelineEntry struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	WorldID     string    `gorm:"column:world_id"`
	Type        string    `gorm:"column:type"`
	Description string    `gorm:"column:description"`
	Date        string    `gorm:"column:date"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (TimelineEntry) TableName() string { return "world_timeline" }

type ChangeEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	WorldID    string    `gorm:"column:world_id"`
	Type       string    `gorm:"column:type"`
	Payload    []byte    `gorm:"column:payload"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
}

func (ChangeEvent) TableName() string { return "world_events" }
