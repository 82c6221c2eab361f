package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"worldforge/internal/adapter/repo/memory"
	"worldforge/internal/app/lore"
	"worldforge/internal/app/poi"
	"worldforge/internal/app/ports"
	"worldforge/internal/app/region"
	"worldforge/internal/app/replay"
	"worldforge/internal/app/worldgen"
	"worldforge/internal/domain/terrain"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route/param"
	"github.com/google/uuid"
)

func newTestHandler() Handler {
	store := memory.NewStore()
	worlds := memory.NewWorldRepo(store)
	regions := memory.NewRegionRepo(store)
	pois := memory.NewPOIRepo(store)
	loreRepo := memory.NewLoreRepo(store)
	timeline := memory.NewTimelineRepo(store)
	events := memory.NewEventRepo(store)
	txManager := memory.NewTxManager(store)
	now := func() time.Time { return time.Unix(1700000000, 0) }

	return Handler{
		WorldUC: worldgen.UseCase{
			Worlds: worlds, Regions: regions, POIs: pois, Lore: loreRepo,
			Timeline: timeline, Events: events, TxManager: txManager,
			Broadcast: ports.NopBroadcaster{}, NewID: uuid.NewString, Now: now,
		},
		RegionUC: region.UseCase{
			Worlds: worlds, Regions: regions, Events: events,
			Broadcast: ports.NopBroadcaster{}, Now: now,
		},
		POIUC: poi.UseCase{
			Worlds: worlds, POIs: pois, Events: events, TxManager: txManager,
			Broadcast: ports.NopBroadcaster{}, NewID: uuid.NewString, Now: now,
		},
		LoreUC: lore.UseCase{
			Worlds: worlds, Lore: loreRepo, Timeline: timeline, Events: events,
			Broadcast: ports.NopBroadcaster{}, NewID: uuid.NewString, Now: now,
		},
		ReplayUC: replay.UseCase{Events: events},
	}
}

func requestWithBody(t *testing.T, body any, params ...param.Param) *app.RequestContext {
	t.Helper()
	ctx := &app.RequestContext{}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		ctx.Request.SetBody(b)
	}
	ctx.Params = param.Params(params)
	return ctx
}

func createTestWorld(t *testing.T, h Handler) string {
	t.Helper()
	ctx := requestWithBody(t, createWorldRequest{Width: 8, Height: 8, Seed: "42"})
	h.createWorld(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusCreated {
		t.Fatalf("createWorld status: got=%d body=%s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	var resp worldgen.CreateResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("unmarshal create response: %v", err)
	}
	return resp.WorldID
}

func TestCreateWorldHandler(t *testing.T) {
	h := newTestHandler()
	worldID := createTestWorld(t, h)
	if worldID == "" {
		t.Fatalf("empty world id in response")
	}
}

func TestCreateWorldInvalidJSON(t *testing.T) {
	h := newTestHandler()
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte("{not json"))

	h.createWorld(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status: got=%d want=%d", got, want)
	}
}

func TestGetWorldNotFound(t *testing.T) {
	h := newTestHandler()
	ctx := requestWithBody(t, nil, param.Param{Key: "id", Value: "missing"})

	h.getWorld(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status: got=%d want=%d", got, want)
	}
}

func TestNameRegionHandler(t *testing.T) {
	h := newTestHandler()
	worldID := createTestWorld(t, h)

	ctx := requestWithBody(t, nameRegionRequest{Name: "Eldwood"},
		param.Param{Key: "id", Value: worldID},
		param.Param{Key: "x", Value: "2"},
		param.Param{Key: "y", Value: "3"},
	)
	h.nameRegion(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status: got=%d body=%s", got, ctx.Response.Body())
	}

	var record ports.RegionRecord
	if err := json.Unmarshal(ctx.Response.Body(), &record); err != nil {
		t.Fatalf("unmarshal region: %v", err)
	}
	if record.Name != "Eldwood" || !record.Discovered {
		t.Fatalf("region not named: %+v", record)
	}
}

func TestRegionInvalidCoordinates(t *testing.T) {
	h := newTestHandler()
	worldID := createTestWorld(t, h)

	ctx := requestWithBody(t, nil,
		param.Param{Key: "id", Value: worldID},
		param.Param{Key: "x", Value: "east"},
		param.Param{Key: "y", Value: "0"},
	)
	h.getRegion(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status: got=%d want=%d", got, want)
	}
}

func TestCreatePOIHandler(t *testing.T) {
	h := newTestHandler()
	worldID := createTestWorld(t, h)

	ctx := requestWithBody(t, createPOIRequest{Type: "settlement", X: 1, Y: 1},
		param.Param{Key: "id", Value: worldID},
	)
	h.createPOI(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusCreated; got != want {
		t.Fatalf("status: got=%d body=%s", got, ctx.Response.Body())
	}

	var record ports.POIRecord
	if err := json.Unmarshal(ctx.Response.Body(), &record); err != nil {
		t.Fatalf("unmarshal poi: %v", err)
	}
	if record.Name == "" {
		t.Fatalf("poi missing generated name")
	}
}

func TestWriteErrorMappings(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{terrain.ErrInvalidDimensions, consts.StatusBadRequest, "invalid_dimensions"},
		{terrain.ErrInvalidOctaves, consts.StatusBadRequest, "invalid_octaves"},
		{region.ErrOutOfBounds, consts.StatusBadRequest, "out_of_bounds"},
		{poi.ErrOutOfBounds, consts.StatusBadRequest, "out_of_bounds"},
		{worldgen.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{lore.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{ports.ErrNotFound, consts.StatusNotFound, "not_found"},
		{ports.ErrConflict, consts.StatusConflict, "conflict"},
		{errors.New("boom"), consts.StatusInternalServerError, "internal_error"},
	}
	for _, c := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, c.err)

		if got := ctx.Response.StatusCode(); got != c.wantStatus {
			t.Fatalf("%v: status got=%d want=%d", c.err, got, c.wantStatus)
		}
		var body map[string]map[string]any
		if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if got := body["error"]["code"]; got != c.wantCode {
			t.Fatalf("%v: code got=%q want=%q", c.err, got, c.wantCode)
		}
	}
}

func TestKPIWithoutProvider(t *testing.T) {
	h := newTestHandler()
	ctx := &app.RequestContext{}

	h.kpi(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status: got=%d want=%d", got, want)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler()
	ctx := &app.RequestContext{}

	h.health(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status: got=%d want=%d", got, want)
	}
}
