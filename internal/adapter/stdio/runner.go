// Package stdio runs the line-delimited JSON tool-call protocol. Each input
// line is {"tool": <name>, "params": {...}}; each response line reports
// status, tool and either a result or an error.
package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"worldforge/internal/app/lore"
	"worldforge/internal/app/poi"
	"worldforge/internal/app/ports"
	"worldforge/internal/app/region"
	"worldforge/internal/app/worldgen"
)

// Scanner buffer upper bound; tool calls are small but batch region naming
// can run long.
const maxLineBytes = 1 << 20

type Runner struct {
	WorldUC  worldgen.UseCase
	RegionUC region.UseCase
	POIUC    poi.UseCase
	LoreUC   lore.UseCase
	Metrics  ports.GenerationMetrics

	In  io.Reader
	Out io.Writer
}

type toolCall struct {
	Tool   string          `json:"tool"`
	Params json.RawMessage `json:"params"`
}

type toolFunc func(ctx context.Context, params json.RawMessage) (any, error)

// Run consumes tool calls until the input closes or the context is
// cancelled. Malformed lines are logged and skipped; tool errors are
// reported on the output stream without stopping the loop.
func (r Runner) Run(ctx context.Context) error {
	tools := r.registry()
	enc := json.NewEncoder(r.Out)

	scanner := bufio.NewScanner(r.In)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var call toolCall
		if err := json.Unmarshal(line, &call); err != nil || call.Tool == "" {
			log.Printf("stdio: skipping malformed line")
			continue
		}

		fn, ok := tools[call.Tool]
		if !ok {
			r.writeError(enc, call.Tool, fmt.Errorf("tool not found"))
			continue
		}
		if r.Metrics != nil {
			r.Metrics.RecordToolCall(call.Tool)
		}

		result, err := fn(ctx, call.Params)
		if err != nil {
			if r.Metrics != nil {
				r.Metrics.RecordFailure()
			}
			r.writeError(enc, call.Tool, err)
			continue
		}
		if err := enc.Encode(map[string]any{
			"status": "success",
			"tool":   call.Tool,
			"result": result,
		}); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (r Runner) writeError(enc *json.Encoder, tool string, err error) {
	if encErr := enc.Encode(map[string]any{
		"status": "error",
		"tool":   tool,
		"error":  err.Error(),
	}); encErr != nil {
		log.Printf("stdio: write failed: %v", encErr)
	}
}

func (r Runner) registry() map[string]toolFunc {
	return map[string]toolFunc{
		"create_world":        r.createWorld,
		"get_world":           r.getWorld,
		"list_worlds":         r.listWorlds,
		"get_region":          r.getRegion,
		"name_region":         r.nameRegion,
		"batch_name_regions":  r.batchNameRegions,
		"describe_region":     r.describeRegion,
		"create_poi":          r.createPOI,
		"update_poi":          r.updatePOI,
		"detail_poi":          r.detailPOI,
		"list_pois":           r.listPOIs,
		"generate_world_lore": r.generateLore,
		"add_timeline_event":  r.addTimelineEvent,
	}
}

func (r Runner) createWorld(ctx context.Context, raw json.RawMessage) (any, error) {
	var params struct {
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		Size       int    `json:"size"`
		Seed       string `json:"seed"`
		Octaves    int    `json:"octaves"`
		IslandMode bool   `json:"island_mode"`
		POICount   int    `json:"poi_count"`
	}
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	// size is the square-world shorthand the protocol started with.
	if params.Size > 0 && params.Width == 0 && params.Height == 0 {
		params.Width = params.Size
		params.Height = params.Size
	}
	return r.WorldUC.Create(ctx, worldgen.CreateRequest{
		Width:      params.Width,
		Height:     params.Height,
		Seed:       params.Seed,
		Octaves:    params.Octaves,
		IslandMode: params.IslandMode,
		POICount:   params.POICount,
	})
}

func (r Runner) getWorld(ctx context.Context, raw json.RawMessage) (any, error) {
	var params struct {
		WorldID string `json:"world_id"`
	}
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	return r.WorldUC.Get(ctx, params.WorldID)
}

func (r Runner) listWorlds(ctx context.Context, _ json.RawMessage) (any, error) {
	return r.WorldUC.List(ctx)
}

func (r Runner) getRegion(ctx context.Context, raw json.RawMessage) (any, error) {
	var params struct {
		WorldID string `json:"world_id"`
		X       int    `json:"x"`
		Y       int    `json:"y"`
	}
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	return r.RegionUC.Get(ctx, params.WorldID, params.X, params.Y)
}

func (r Runner) nameRegion(ctx context.Context, raw json.RawMessage) (any, error) {
	var params struct {
		WorldID string `json:"world_id"`
		X       int    `json:"x"`
		Y       int    `json:"y"`
		Name    string `json:"name"`
	}
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	return r.RegionUC.Name(ctx, region.NameRequest{
		WorldID: params.WorldID,
		X:       params.X,
		Y:       params.Y,
		Name:    params.Name,
	})
}

func (r Runner) batchNameRegions(ctx context.Context, raw json.RawMessage) (any, error) {
	var params struct {
		WorldID string `json:"world_id"`
		Regions []struct {
			X    int    `json:"x"`
			Y    int    `json:"y"`
			Name string `json:"name"`
		} `json:"regions"`
	}
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	entries := make([]region.NameRequest, 0, len(params.Regions))
	for _, e := range params.Regions {
		entries = append(entries, region.NameRequest{X: e.X, Y: e.Y, Name: e.Name})
	}
	return r.RegionUC.BatchName(ctx, params.WorldID, entries)
}

func (r Runner) describeRegion(ctx context.Context, raw json.RawMessage) (any, error) {
	var params struct {
		WorldID string `json:"world_id"`
		X       int    `json:"x"`
		Y       int    `json:"y"`
	}
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	description, err := r.RegionUC.Describe(ctx, params.WorldID, params.X, params.Y)
	if err != nil {
		return nil, err
	}
	return map[string]string{"description": description}, nil
}

func (r Runner) createPOI(ctx context.Context, raw json.RawMessage) (any, error) {
	var params struct {
		WorldID string `json:"world_id"`
		POIType string `json:"poi_type"`
		X       int    `json:"x"`
		Y       int    `json:"y"`
		Name    string `json:"name"`
	}
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	return r.POIUC.Create(ctx, poi.CreateRequest{
		WorldID: params.WorldID,
		Type:    params.POIType,
		X:       params.X,
		Y:       params.Y,
		Name:    params.Name,
	})
}

func (r Runner) updatePOI(ctx context.Context, raw json.RawMessage) (any, error) {
	var params struct {
		WorldID string `json:"world_id"`
		POIID   string `json:"poi_id"`
		Updates struct {
			Name       *string `json:"name"`
			Type       *string `json:"type"`
			Discovered *bool   `json:"discovered"`
			Explored   *bool   `json:"explored"`
		} `json:"updates"`
	}
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	return r.POIUC.Update(ctx, poi.UpdateRequest{
		WorldID:    params.WorldID,
		POIID:      params.POIID,
		Name:       params.Updates.Name,
		Type:       params.Updates.Type,
		Discovered: params.Updates.Discovered,
		Explored:   params.Updates.Explored,
	})
}

func (r Runner) detailPOI(ctx context.Context, raw json.RawMessage) (any, error) {
	var params struct {
		WorldID string `json:"world_id"`
		POIID   string `json:"poi_id"`
		Level   string `json:"level"`
	}
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	return r.POIUC.Detail(ctx, params.WorldID, params.POIID, poi.DetailLevel(params.Level))
}

func (r Runner) listPOIs(ctx context.Context, raw json.RawMessage) (any, error) {
	var params struct {
		WorldID string `json:"world_id"`
	}
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	return r.POIUC.List(ctx, params.WorldID)
}

func (r Runner) generateLore(ctx context.Context, raw json.RawMessage) (any, error) {
	var params struct {
		WorldID  string   `json:"world_id"`
		LoreType string   `json:"lore_type"`
		Themes   []string `json:"themes"`
	}
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	return r.LoreUC.Generate(ctx, lore.GenerateRequest{
		WorldID: params.WorldID,
		Type:    params.LoreType,
		Themes:  params.Themes,
	})
}

func (r Runner) addTimelineEvent(ctx context.Context, raw json.RawMessage) (any, error) {
	var params struct {
		WorldID     string `json:"world_id"`
		EventType   string `json:"event_type"`
		Description string `json:"description"`
		Date        string `json:"date"`
	}
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	return r.LoreUC.AddEvent(ctx, lore.EventRequest{
		WorldID:     params.WorldID,
		Type:        params.EventType,
		Description: params.Description,
		Date:        params.Date,
	})
}

func decodeParams(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}
