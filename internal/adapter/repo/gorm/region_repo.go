package gormrepo

import (
	"context"
	"errors"
	"time"

	"worldforge/internal/adapter/repo/gorm/model"
	"worldforge/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegionRepo struct {
	db *gorm.DB
}

func NewRegionRepo(db *gorm.DB) RegionRepo {
	return RegionRepo{db: db}
}

func (r RegionRepo) Get(ctx context.Context, worldID string, x, y int) (ports.RegionRecord, error) {
	var row model.Region
	err := getDBFromCtx(ctx, r.db).
		Where(map[string]any{"world_id": worldID, "x": int32(x), "y": int32(y)}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RegionRecord{}, ports.ErrNotFound
		}
		return ports.RegionRecord{}, err
	}
	return regionFromRow(row), nil
}

func (r RegionRepo) Save(ctx context.Context, record ports.RegionRecord) error {
	row := model.Region{
		WorldID:     record.WorldID,
		X:           int32(record.X),
		Y:           int32(record.Y),
		Biome:       record.Biome,
		Elevation:   record.Elevation,
		Name:        record.Name,
		Description: record.Description,
		Discovered:  record.Discovered,
		Explored:    record.Explored,
		UpdatedAt:   time.Now(),
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "world_id"}, {Name: "x"}, {Name: "y"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "discovered", "explored", "updated_at"}),
	}).Create(&row).Error
}

func (r RegionRepo) CountNamed(ctx context.Context, worldID string) (int, error) {
	var count int64
	err := getDBFromCtx(ctx, r.db).
		Model(&model.Region{}).
		Where("world_id = ? AND name <> ''", worldID).
		Count(&count).Error
	return int(count), err
}

func (r RegionRepo) DeleteByWorld(ctx context.Context, worldID string) error {
	return getDBFromCtx(ctx, r.db).
		Where("world_id = ?", worldID).
		Delete(&model.Region{}).Error
}

func regionFromRow(row model.Region) ports.RegionRecord {
	return ports.RegionRecord{
		WorldID:     row.WorldID,
		X:           int(row.X),
		Y:           int(row.Y),
		Biome:       row.Biome,
		Elevation:   row.Elevation,
		Name:        row.Name,
		Description: row.Description,
		Discovered:  row.Discovered,
		Explored:    row.Explored,
	}
}
