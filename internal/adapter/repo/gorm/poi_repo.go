package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"worldforge/internal/adapter/repo/gorm/model"
	"worldforge/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type POIRepo struct {
	db *gorm.DB
}

func NewPOIRepo(db *gorm.DB) POIRepo {
	return POIRepo{db: db}
}

func (r POIRepo) Save(ctx context.Context, record ports.POIRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	row := model.POI{
		ID:        record.ID,
		WorldID:   record.WorldID,
		Data:      data,
		CreatedAt: record.CreatedAt,
		UpdatedAt: time.Now(),
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}, {Name: "world_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func (r POIRepo) Get(ctx context.Context, worldID, poiID string) (ports.POIRecord, error) {
	var row model.POI
	err := getDBFromCtx(ctx, r.db).
		Where(&model.POI{ID: poiID, WorldID: worldID}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.POIRecord{}, ports.ErrNotFound
		}
		return ports.POIRecord{}, err
	}
	return poiFromRow(row)
}

func (r POIRepo) ListByWorld(ctx context.Context, worldID string) ([]ports.POIRecord, error) {
	rows := []model.POI{}
	err := getDBFromCtx(ctx, r.db).
		Where(&model.POI{WorldID: worldID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "created_at"}}},
		}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.POIRecord, 0, len(rows))
	for _, row := range rows {
		record, err := poiFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func (r POIRepo) CountByWorld(ctx context.Context, worldID string) (int, error) {
	var count int64
	err := getDBFromCtx(ctx, r.db).
		Model(&model.POI{}).
		Where("world_id = ?", worldID).
		Count(&count).Error
	return int(count), err
}

func (r POIRepo) DeleteByWorld(ctx context.Context, worldID string) error {
	return getDBFromCtx(ctx, r.db).
		Where("world_id = ?", worldID).
		Delete(&model.POI{}).Error
}

func poiFromRow(row model.POI) (ports.POIRecord, error) {
	var record ports.POIRecord
	if err := json.Unmarshal(row.Data, &record); err != nil {
		return ports.POIRecord{}, err
	}
	return record, nil
}
