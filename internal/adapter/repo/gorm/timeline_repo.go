package gormrepo

import (
	"context"

	"worldforge/internal/adapter/repo/gorm/model"
	"worldforge/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TimelineRepo struct {
	db *gorm.DB
}

func NewTimelineRepo(db *gorm.DB) TimelineRepo {
	return TimelineRepo{db: db}
}

func (r TimelineRepo) Append(ctx context.Context, entry ports.TimelineEntry) (ports.TimelineEntry, error) {
	row := model.TimelineEntry{
		WorldID:     entry.WorldID,
		Type:        entry.Type,
		Description: entry.Description,
		Date:        entry.Date,
		CreatedAt:   entry.CreatedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		return ports.TimelineEntry{}, err
	}
	entry.ID = row.ID
	return entry, nil
}

func (r TimelineRepo) ListByWorld(ctx context.Context, worldID string) ([]ports.TimelineEntry, error) {
	rows := []model.TimelineEntry{}
	err := getDBFromCtx(ctx, r.db).
		Where(&model.TimelineEntry{WorldID: worldID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "date"}},
				{Column: clause.Column{Name: "id"}},
			},
		}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.TimelineEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.TimelineEntry{
			ID:          row.ID,
			WorldID:     row.WorldID,
			Type:        row.Type,
			Description: row.Description,
			Date:        row.Date,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, nil
}

func (r TimelineRepo) DeleteByWorld(ctx context.Context, worldID string) error {
	return getDBFromCtx(ctx, r.db).
		Where("world_id = ?", worldID).
		Delete(&model.TimelineEntry{}).Error
}
