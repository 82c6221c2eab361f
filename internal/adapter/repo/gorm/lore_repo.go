package gormrepo

import (
	"context"
	"encoding/json"

	"worldforge/internal/adapter/repo/gorm/model"
	"worldforge/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoreRepo struct {
	db *gorm.DB
}

func NewLoreRepo(db *gorm.DB) LoreRepo {
	return LoreRepo{db: db}
}

func (r LoreRepo) Save(ctx context.Context, record ports.LoreRecord) error {
	themes, err := json.Marshal(record.Themes)
	if err != nil {
		return err
	}
	row := model.Lore{
		ID:        record.ID,
		WorldID:   record.WorldID,
		Type:      record.Type,
		Title:     record.Title,
		Content:   record.Content,
		Themes:    themes,
		CreatedAt: record.CreatedAt,
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "content", "themes"}),
	}).Create(&row).Error
}

func (r LoreRepo) ListByWorld(ctx context.Context, worldID, loreType string) ([]ports.LoreRecord, error) {
	where := map[string]any{"world_id": worldID}
	if loreType != "" {
		where["type"] = loreType
	}
	rows := []model.Lore{}
	err := getDBFromCtx(ctx, r.db).
		Where(where).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "created_at"}}},
		}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.LoreRecord, 0, len(rows))
	for _, row := range rows {
		record, err := loreFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func (r LoreRepo) CountByWorld(ctx context.Context, worldID string) (int, error) {
	var count int64
	err := getDBFromCtx(ctx, r.db).
		Model(&model.Lore{}).
		Where("world_id = ?", worldID).
		Count(&count).Error
	return int(count), err
}

func (r LoreRepo) DeleteByWorld(ctx context.Context, worldID string) error {
	return getDBFromCtx(ctx, r.db).
		Where("world_id = ?", worldID).
		Delete(&model.Lore{}).Error
}

func loreFromRow(row model.Lore) (ports.LoreRecord, error) {
	record := ports.LoreRecord{
		ID:        row.ID,
		WorldID:   row.WorldID,
		Type:      row.Type,
		Title:     row.Title,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
	}
	if len(row.Themes) > 0 {
		if err := json.Unmarshal(row.Themes, &record.Themes); err != nil {
			return ports.LoreRecord{}, err
		}
	}
	return record, nil
}
