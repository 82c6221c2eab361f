package gormrepo

import (
	"context"
	"encoding/json"

	"worldforge/internal/adapter/repo/gorm/model"
	"worldforge/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, events []ports.ChangeEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.ChangeEvent, 0, len(events))
	for _, ev := range events {
		payload, err := json.Marshal(ev.Payload)
		if err != nil {
			return err
		}
		rows = append(rows, model.ChangeEvent{
			WorldID:    ev.WorldID,
			Type:       ev.Type,
			Payload:    payload,
			OccurredAt: ev.OccurredAt,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListByWorld(ctx context.Context, worldID string, limit int) ([]ports.ChangeEvent, error) {
	rows := []model.ChangeEvent{}
	q := getDBFromCtx(ctx, r.db).
		Where(&model.ChangeEvent{WorldID: worldID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.ChangeEvent, 0, len(rows))
	for _, row := range rows {
		ev := ports.ChangeEvent{
			WorldID:    row.WorldID,
			Type:       row.Type,
			OccurredAt: row.OccurredAt,
		}
		if len(row.Payload) > 0 {
			if err := json.Unmarshal(row.Payload, &ev.Payload); err != nil {
				return nil, err
			}
		}
		out = append(out, ev)
	}
	return out, nil
}

func (r EventRepo) DeleteByWorld(ctx context.Context, worldID string) error {
	return getDBFromCtx(ctx, r.db).
		Where("world_id = ?", worldID).
		Delete(&model.ChangeEvent{}).Error
}
