package main

import (
	"log"
	"net/http"

	"aeskit/internal/config"
	"aeskit/internal/httpserver"
	"aeskit/internal/logger"
	"aeskit/internal/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()

	var db *gorm.DB
	if cfg.DatabaseURL == "" {
		lg.Warnw("DATABASE_URL is empty, running without persistence; /v1 routes are disabled")
	} else {
		db = openStore(cfg, lg)
	}
	if cfg.JWTSecret == "" && db != nil {
		lg.Fatalw("JWT_SECRET is required when a database is configured")
	}

	router := httpserver.NewRouter(db, lg, httpserver.Options{
		JWTSecret:      []byte(cfg.JWTSecret),
		JWTTTL:         cfg.JWTTTL,
		CipherParallel: cfg.CipherParallel,
	})
	lg.Infow("listening", "port", cfg.HTTPPort, "parallel", cfg.CipherParallel)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatal(err)
	}
}

func openStore(cfg config.Config, lg *zap.SugaredLogger) *gorm.DB {
	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := store.Migrate(db); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	if cfg.AdminPassword == "" {
		lg.Warnw("ADMIN_PASSWORD is empty, skipping admin seed")
		return db
	}
	created, err := store.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		lg.Fatalw("admin seed failed", "error", err)
	}
	if created {
		lg.Infow("seeded default admin", "email", cfg.AdminEmail)
	}
	return db
}
