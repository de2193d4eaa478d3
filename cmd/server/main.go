package main // Entry point package

import (
	"github.com/joho/godotenv"    // godotenv loads .env files for local development
	"github.com/labstack/echo/v4" // Echo web framework
	"github.com/sirupsen/logrus"  // logrus is the structured logger

	"github.com/lunarblood/band-site/internal/config"     // environment configuration
	"github.com/lunarblood/band-site/internal/database"   // MySQL connection pool
	"github.com/lunarblood/band-site/internal/draft"      // wizard, draft store and autosave
	"github.com/lunarblood/band-site/internal/handler"    // HTTP handlers
	"github.com/lunarblood/band-site/internal/queue"      // broker event consumer
	"github.com/lunarblood/band-site/internal/repository" // data access
	"github.com/lunarblood/band-site/internal/router"     // route table
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Env == "dev" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer func() { _ = db.Close() }()

	// Redis is optional.  Without it drafts live in process memory and the
	// limiter and response cache disable themselves.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, drafts fall back to in-memory store")
	}

	venueRepo := repository.NewVenueRepo(db)
	showRepo := repository.NewShowRepo(db)
	albumRepo := repository.NewAlbumRepo(db)
	productRepo := repository.NewProductRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	drafts := draft.NewCoordinator(draft.NewStore(rdb), cfg.AutosaveDelay)
	wizard := draft.NewWizard(venueRepo)

	h := router.Handlers{
		Pages:     handler.NewPageHandler(albumRepo, showRepo, log),
		Venues:    handler.NewVenueHandler(venueRepo, showRepo),
		Shows:     handler.NewShowHandler(showRepo, venueRepo, wizard, drafts, log),
		Shop:      handler.NewShopHandler(productRepo, log),
		Dashboard: handler.NewDashboardHandler(venueRepo, showRepo, productRepo, log),
		Auth:      handler.NewAuthHandler(cfg, userRepo, tokenRepo),
		Sitemap:   handler.NewSitemapHandler(cfg.BaseURL, venueRepo, productRepo, log),
	}

	// The consumer reconnects on its own; a dead broker only costs the
	// event log, never a request.
	go func() {
		if err := queue.StartEventConsumer(log); err != nil {
			log.WithError(err).Warn("event consumer stopped")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, rdb, h)

	addr := ":" + cfg.Port
	log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("server starting")
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
