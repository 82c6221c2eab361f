package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"worldforge/internal/app/lore"
	"worldforge/internal/app/poi"
	"worldforge/internal/app/ports"
	"worldforge/internal/app/region"
	"worldforge/internal/app/replay"
	"worldforge/internal/app/worldgen"
	"worldforge/internal/domain/terrain"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	WorldUC  worldgen.UseCase
	RegionUC region.UseCase
	POIUC    poi.UseCase
	LoreUC   lore.UseCase
	ReplayUC replay.UseCase
	KPI      kpiSnapshotProvider
	// WS is the websocket upgrade handler; nil disables the /ws route.
	WS app.HandlerFunc
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	worlds := s.Group("/api/worlds")
	worlds.POST("", h.createWorld)
	worlds.GET("", h.listWorlds)
	worlds.GET("/:id", h.getWorld)
	worlds.DELETE("/:id", h.deleteWorld)
	worlds.GET("/:id/statistics", h.worldStats)
	worlds.GET("/:id/events", h.replayEvents)

	worlds.GET("/:id/regions/:x/:y", h.getRegion)
	worlds.POST("/:id/regions/:x/:y/name", h.nameRegion)
	worlds.POST("/:id/regions/:x/:y/describe", h.describeRegion)
	worlds.POST("/:id/regions/names", h.batchNameRegions)

	worlds.POST("/:id/pois", h.createPOI)
	worlds.GET("/:id/pois", h.listPOIs)
	worlds.GET("/:id/pois/:poiID", h.getPOI)
	worlds.PATCH("/:id/pois/:poiID", h.updatePOI)
	worlds.POST("/:id/pois/:poiID/detail", h.detailPOI)

	worlds.POST("/:id/lore", h.generateLore)
	worlds.GET("/:id/lore", h.listLore)
	worlds.POST("/:id/timeline", h.addTimelineEvent)
	worlds.GET("/:id/timeline", h.listTimeline)

	s.GET("/health", h.health)
	s.GET("/ops/kpi", h.kpi)
	if h.WS != nil {
		s.GET("/ws", h.WS)
	}
}

type createWorldRequest struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Seed       string `json:"seed"`
	Octaves    int    `json:"octaves"`
	IslandMode bool   `json:"island_mode"`
	POICount   int    `json:"poi_count"`
}

func (h Handler) createWorld(c context.Context, ctx *app.RequestContext) {
	var body createWorldRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.WorldUC.Create(c, worldgen.CreateRequest{
		Width:      body.Width,
		Height:     body.Height,
		Seed:       body.Seed,
		Octaves:    body.Octaves,
		IslandMode: body.IslandMode,
		POICount:   body.POICount,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) listWorlds(c context.Context, ctx *app.RequestContext) {
	worlds, err := h.WorldUC.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"worlds": worlds})
}

func (h Handler) getWorld(c context.Context, ctx *app.RequestContext) {
	doc, err := h.WorldUC.Get(c, string(ctx.Param("id")))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, doc)
}

func (h Handler) deleteWorld(c context.Context, ctx *app.RequestContext) {
	if err := h.WorldUC.Delete(c, string(ctx.Param("id"))); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"deleted": true})
}

func (h Handler) worldStats(c context.Context, ctx *app.RequestContext) {
	stats, err := h.WorldUC.Stats(c, string(ctx.Param("id")))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, stats)
}

func (h Handler) replayEvents(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		WorldID: string(ctx.Param("id")),
		Limit:   limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) getRegion(c context.Context, ctx *app.RequestContext) {
	x, y, err := regionCoords(ctx)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_coordinates", "invalid coordinates")
		return
	}
	record, err := h.RegionUC.Get(c, string(ctx.Param("id")), x, y)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, record)
}

type nameRegionRequest struct {
	Name string `json:"name"`
}

func (h Handler) nameRegion(c context.Context, ctx *app.RequestContext) {
	x, y, err := regionCoords(ctx)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_coordinates", "invalid coordinates")
		return
	}
	var body nameRegionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	record, err := h.RegionUC.Name(c, region.NameRequest{
		WorldID: string(ctx.Param("id")),
		X:       x,
		Y:       y,
		Name:    body.Name,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, record)
}

func (h Handler) describeRegion(c context.Context, ctx *app.RequestContext) {
	x, y, err := regionCoords(ctx)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_coordinates", "invalid coordinates")
		return
	}
	description, err := h.RegionUC.Describe(c, string(ctx.Param("id")), x, y)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"description": description})
}

type batchNameRequest struct {
	Regions []struct {
		X    int    `json:"x"`
		Y    int    `json:"y"`
		Name string `json:"name"`
	} `json:"regions"`
}

func (h Handler) batchNameRegions(c context.Context, ctx *app.RequestContext) {
	var body batchNameRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	entries := make([]region.NameRequest, 0, len(body.Regions))
	for _, r := range body.Regions {
		entries = append(entries, region.NameRequest{X: r.X, Y: r.Y, Name: r.Name})
	}
	records, err := h.RegionUC.BatchName(c, string(ctx.Param("id")), entries)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"named": records, "count": len(records)})
}

type createPOIRequest struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Name string `json:"name,omitempty"`
}

func (h Handler) createPOI(c context.Context, ctx *app.RequestContext) {
	var body createPOIRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	record, err := h.POIUC.Create(c, poi.CreateRequest{
		WorldID: string(ctx.Param("id")),
		Type:    body.Type,
		X:       body.X,
		Y:       body.Y,
		Name:    body.Name,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, record)
}

func (h Handler) listPOIs(c context.Context, ctx *app.RequestContext) {
	records, err := h.POIUC.List(c, string(ctx.Param("id")))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"pois": records, "count": len(records)})
}

func (h Handler) getPOI(c context.Context, ctx *app.RequestContext) {
	record, err := h.POIUC.Get(c, string(ctx.Param("id")), string(ctx.Param("poiID")))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, record)
}

type updatePOIRequest struct {
	Name       *string `json:"name,omitempty"`
	Type       *string `json:"type,omitempty"`
	Discovered *bool   `json:"discovered,omitempty"`
	Explored   *bool   `json:"explored,omitempty"`
}

func (h Handler) updatePOI(c context.Context, ctx *app.RequestContext) {
	var body updatePOIRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	record, err := h.POIUC.Update(c, poi.UpdateRequest{
		WorldID:    string(ctx.Param("id")),
		POIID:      string(ctx.Param("poiID")),
		Name:       body.Name,
		Type:       body.Type,
		Discovered: body.Discovered,
		Explored:   body.Explored,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, record)
}

type detailPOIRequest struct {
	Level string `json:"level"`
}

func (h Handler) detailPOI(c context.Context, ctx *app.RequestContext) {
	var body detailPOIRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	record, err := h.POIUC.Detail(c, string(ctx.Param("id")), string(ctx.Param("poiID")), poi.DetailLevel(body.Level))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, record)
}

type generateLoreRequest struct {
	Type   string   `json:"type"`
	Themes []string `json:"themes,omitempty"`
}

func (h Handler) generateLore(c context.Context, ctx *app.RequestContext) {
	var body generateLoreRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	record, err := h.LoreUC.Generate(c, lore.GenerateRequest{
		WorldID: string(ctx.Param("id")),
		Type:    body.Type,
		Themes:  body.Themes,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, record)
}

func (h Handler) listLore(c context.Context, ctx *app.RequestContext) {
	records, err := h.LoreUC.List(c, string(ctx.Param("id")), string(ctx.Query("type")))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"lore": records, "count": len(records)})
}

type timelineEventRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Date        string `json:"date,omitempty"`
}

func (h Handler) addTimelineEvent(c context.Context, ctx *app.RequestContext) {
	var body timelineEventRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	entry, err := h.LoreUC.AddEvent(c, lore.EventRequest{
		WorldID:     string(ctx.Param("id")),
		Type:        body.Type,
		Description: body.Description,
		Date:        body.Date,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, entry)
}

func (h Handler) listTimeline(c context.Context, ctx *app.RequestContext) {
	entries, err := h.LoreUC.TimelineFor(c, string(ctx.Param("id")))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"timeline": entries, "count": len(entries)})
}

func (h Handler) health(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func regionCoords(ctx *app.RequestContext) (int, int, error) {
	x, err := strconv.Atoi(string(ctx.Param("x")))
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(string(ctx.Param("y")))
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, terrain.ErrInvalidDimensions):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_dimensions", err.Error())
	case errors.Is(err, terrain.ErrInvalidOctaves):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_octaves", err.Error())
	case errors.Is(err, region.ErrOutOfBounds),
		errors.Is(err, poi.ErrOutOfBounds):
		writeErrorBody(ctx, consts.StatusBadRequest, "out_of_bounds", err.Error())
	case errors.Is(err, worldgen.ErrInvalidRequest),
		errors.Is(err, region.ErrInvalidRequest),
		errors.Is(err, poi.ErrInvalidRequest),
		errors.Is(err, lore.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
