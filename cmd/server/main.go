package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"worldforge/internal/adapter/event/ws"
	httpadapter "worldforge/internal/adapter/http"
	metricsinmem "worldforge/internal/adapter/metrics/inmemory"
	gormrepo "worldforge/internal/adapter/repo/gorm"
	"worldforge/internal/adapter/repo/memory"
	"worldforge/internal/adapter/stdio"
	"worldforge/internal/app/lore"
	"worldforge/internal/app/poi"
	"worldforge/internal/app/ports"
	"worldforge/internal/app/region"
	"worldforge/internal/app/replay"
	"worldforge/internal/app/worldgen"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/google/uuid"
)

type repos struct {
	worlds    ports.WorldRepository
	regions   ports.RegionRepository
	pois      ports.POIRepository
	lore      ports.LoreRepository
	timeline  ports.TimelineRepository
	events    ports.EventRepository
	txManager ports.TxManager
}

func main() {
	r := mustBuildRepos()
	hub := ws.NewHub()
	kpiRecorder := metricsinmem.NewRecorder()
	newID := func() string { return uuid.NewString() }

	worldUC := worldgen.UseCase{
		Worlds:    r.worlds,
		Regions:   r.regions,
		POIs:      r.pois,
		Lore:      r.lore,
		Timeline:  r.timeline,
		Events:    r.events,
		TxManager: r.txManager,
		Broadcast: hub,
		Metrics:   kpiRecorder,
		NewID:     newID,
		Now:       time.Now,
	}
	regionUC := region.UseCase{
		Worlds:    r.worlds,
		Regions:   r.regions,
		Events:    r.events,
		Broadcast: hub,
		Now:       time.Now,
	}
	poiUC := poi.UseCase{
		Worlds:    r.worlds,
		POIs:      r.pois,
		Events:    r.events,
		TxManager: r.txManager,
		Broadcast: hub,
		NewID:     newID,
		Now:       time.Now,
	}
	loreUC := lore.UseCase{
		Worlds:    r.worlds,
		Lore:      r.lore,
		Timeline:  r.timeline,
		Events:    r.events,
		Broadcast: hub,
		NewID:     newID,
		Now:       time.Now,
	}

	h := httpadapter.Handler{
		WorldUC:  worldUC,
		RegionUC: regionUC,
		POIUC:    poiUC,
		LoreUC:   loreUC,
		ReplayUC: replay.UseCase{Events: r.events},
		KPI:      kpiRecorder,
		WS:       hub.Handler(),
	}

	if boolEnv("WORLDFORGE_STDIO", false) {
		runner := stdio.Runner{
			WorldUC:  worldUC,
			RegionUC: regionUC,
			POIUC:    poiUC,
			LoreUC:   loreUC,
			Metrics:  kpiRecorder,
			In:       os.Stdin,
			Out:      os.Stdout,
		}
		go func() {
			if err := runner.Run(context.Background()); err != nil {
				log.Printf("stdio runner stopped: %v", err)
			}
		}()
		log.Println("stdio tool protocol enabled")
	}

	addr := strEnv("WORLDFORGE_HTTP_ADDR", ":8000")
	s := server.Default(server.WithHostPorts(addr))
	s.Use(httpadapter.CORSMiddleware())
	h.RegisterRoutes(s)

	log.Printf("worldforge server listening on %s", addr)
	s.Spin()
}

func mustBuildRepos() repos {
	dsn := strings.TrimSpace(os.Getenv("WORLDFORGE_DB_DSN"))
	if dsn == "" {
		log.Println("WORLDFORGE_DB_DSN not set, using in-memory store")
		store := memory.NewStore()
		return repos{
			worlds:    memory.NewWorldRepo(store),
			regions:   memory.NewRegionRepo(store),
			pois:      memory.NewPOIRepo(store),
			lore:      memory.NewLoreRepo(store),
			timeline:  memory.NewTimelineRepo(store),
			events:    memory.NewEventRepo(store),
			txManager: memory.NewTxManager(store),
		}
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	return repos{
		worlds:    gormrepo.NewWorldRepo(db),
		regions:   gormrepo.NewRegionRepo(db),
		pois:      gormrepo.NewPOIRepo(db),
		lore:      gormrepo.NewLoreRepo(db),
		timeline:  gormrepo.NewTimelineRepo(db),
		events:    gormrepo.NewEventRepo(db),
		txManager: gormrepo.NewTxManager(db),
	}
}

func strEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func boolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
