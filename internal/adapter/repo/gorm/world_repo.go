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

type WorldRepo struct {
	db *gorm.DB
}

func NewWorldRepo(db *gorm.DB) WorldRepo {
	return WorldRepo{db: db}
}

func (r WorldRepo) Save(ctx context.Context, doc ports.WorldDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	row := model.World{
		ID:        doc.ID,
		Seed:      doc.Config.Seed,
		Width:     int32(doc.Config.Width),
		Height:    int32(doc.Config.Height),
		Data:      data,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: time.Now(),
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func (r WorldRepo) Get(ctx context.Context, worldID string) (ports.WorldDocument, error) {
	var row model.World
	err := getDBFromCtx(ctx, r.db).Where(&model.World{ID: worldID}).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.WorldDocument{}, ports.ErrNotFound
		}
		return ports.WorldDocument{}, err
	}
	var doc ports.WorldDocument
	if err := json.Unmarshal(row.Data, &doc); err != nil {
		return ports.WorldDocument{}, err
	}
	return doc, nil
}

func (r WorldRepo) List(ctx context.Context) ([]ports.WorldSummary, error) {
	rows := []model.World{}
	err := getDBFromCtx(ctx, r.db).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "created_at"}}},
		}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.WorldSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.WorldSummary{
			ID:        row.ID,
			Width:     int(row.Width),
			Height:    int(row.Height),
			Seed:      row.Seed,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r WorldRepo) Delete(ctx context.Context, worldID string) error {
	res := getDBFromCtx(ctx, r.db).Where(&model.World{ID: worldID}).Delete(&model.World{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
