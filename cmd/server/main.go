package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/rivalrockets/rivalrockets-api/internal/config"
	"github.com/rivalrockets/rivalrockets-api/internal/database"
	"github.com/rivalrockets/rivalrockets-api/internal/handler"
	"github.com/rivalrockets/rivalrockets-api/internal/middleware"
	"github.com/rivalrockets/rivalrockets-api/internal/queue"
	"github.com/rivalrockets/rivalrockets-api/internal/repository"
	"github.com/rivalrockets/rivalrockets-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	machines := repository.NewMachineRepo(db)
	revisions := repository.NewRevisionRepo(db)
	cinebench := repository.NewCinebenchR15Repo(db)
	fm06 := repository.NewFuturemark3DMark06Repo(db)
	fm3d := repository.NewFuturemark3DMarkRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Redis is optional. Without it the cache and rate limiter are
	// pass-through no-ops.
	rdb := config.NewRedisClient()
	if cfg.RateLimitPerMin > 0 {
		e.Use(middleware.RateLimit(rdb, cfg.RateLimitPerMin))
	}
	if cfg.CacheTTL > 0 {
		e.Use(middleware.ResponseCache(rdb, cfg.CacheTTL))
	}

	router.Register(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, tokens),
		Users:     handler.NewUserHandler(cfg, users, machines),
		Machines:  handler.NewMachineHandler(machines, revisions),
		Revisions: handler.NewRevisionHandler(machines, revisions, cinebench, fm06, fm3d),
		Cinebench: handler.NewCinebenchR15Handler(cinebench, revisions, machines),
		FM06:      handler.NewFuturemark3DMark06Handler(fm06, revisions, machines),
		FM3D:      handler.NewFuturemark3DMarkHandler(fm3d, revisions, machines),
	}, cfg.JWTSecret, tokens)

	go func() {
		if err := queue.StartBenchmarkConsumer(); err != nil {
			log.Printf("benchmark consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
