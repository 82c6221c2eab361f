package replay

import (
	"context"
	"errors"

	"worldforge/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const defaultLimit = 100

// UseCase exposes the persisted change-event stream for a world so viewers
// that connect late can catch up on what the broadcast already announced.
type UseCase struct {
	Events ports.EventRepository
}

type Request struct {
	WorldID string
	Limit   int
}

type Response struct {
	WorldID string              `json:"world_id"`
	Events  []ports.ChangeEvent `json:"events"`
	Count   int                 `json:"count"`
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.WorldID == "" {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	events, err := u.Events.ListByWorld(ctx, req.WorldID, limit)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return Response{}, err
	}
	if events == nil {
		events = []ports.ChangeEvent{}
	}
	return Response{WorldID: req.WorldID, Events: events, Count: len(events)}, nil
}
