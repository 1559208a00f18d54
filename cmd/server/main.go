package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/hospitalq/bed-allocation/internal/config"
	"github.com/hospitalq/bed-allocation/internal/database"
	"github.com/hospitalq/bed-allocation/internal/engine"
	"github.com/hospitalq/bed-allocation/internal/handler"
	"github.com/hospitalq/bed-allocation/internal/middleware"
	"github.com/hospitalq/bed-allocation/internal/queue"
	"github.com/hospitalq/bed-allocation/internal/router"
)

func main() {
	_ = godotenv.Load() // optional .env for local runs
	cfg := config.Load()

	eng := engine.New(cfg.BedCount, cfg.BedsPerWard)
	if cfg.SeedDemo {
		seedDemo(eng)
	}

	// Optional MySQL audit sink for the placement consumer; nil means
	// placements are appended to logs/placements.log instead.
	db, err := database.OpenFromEnv()
	if err != nil {
		log.Fatalf("audit db: %v", err)
	}
	if db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := database.EnsureAuditTable(ctx, db); err != nil {
			log.Fatalf("audit table: %v", err)
		}
		cancel()
	}
	go queue.StartPlacementConsumer(db)

	// The engine keeps no timer of its own; this goroutine is the one
	// external scheduler advancing the wait clock.
	go runWaitClock(eng, cfg.TickInterval)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable; response cache and rate limiting disabled")
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheCfg := config.LoadCacheConfig()
	bedH := handler.NewBedHandler(eng)
	patientH := handler.NewPatientHandler(eng)
	allocH := handler.NewAllocationHandler(eng)
	statsH := handler.NewStatsHandler(eng)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg))
	router.RegisterQueries(e, bedH, patientH, statsH, middleware.NewQueryCache(cacheCfg, rdb))
	router.RegisterCommands(e, cfg.JWTSecret, bedH, patientH, allocH, middleware.PurgeCache(cacheCfg, rdb))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, beds=%d)", addr, cfg.Env, cfg.BedCount)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// runWaitClock advances every queued patient's waiting time by one
// interval's worth of hours, once per interval. With the default
// one-minute interval each tick adds 1/60 hour.
func runWaitClock(eng *engine.Engine, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		if err := eng.Tick(interval.Hours()); err != nil {
			log.Printf("wait clock: %v", err)
		}
	}
}
