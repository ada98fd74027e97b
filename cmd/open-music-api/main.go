// Command open-music-api serves the album and song REST API.
//
// @title        Open Music API
// @version      1.0
// @description  Albums and songs with a uniform response envelope.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-music-backend/internal/app"
	"github.com/tbourn/go-music-backend/internal/config"
	"github.com/tbourn/go-music-backend/internal/observability"
	"github.com/tbourn/go-music-backend/internal/repo"
	"github.com/tbourn/go-music-backend/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

// setupOTel is replaced in tests.
var setupOTel = observability.SetupOTel

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("open-music-api stopped")
	}
}

// run loads configuration and serves until SIGINT or SIGTERM. Errors are
// returned rather than fatal so deferred cleanup always runs.
func run() error {
	// A missing .env is fine; the environment alone may configure the service.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sysutil.SetupLogger(os.Stdout, cfg.OTEL.ServiceName, cfg.LogPretty)
	sysutil.SetLogLevel(cfg.LogLevel)
	gin.SetMode(sysutil.FirstNonEmpty(cfg.GinMode, gin.ReleaseMode))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, cfg)
}

func serve(ctx context.Context, cfg config.Config) error {
	ver := sysutil.FirstNonEmpty(version, os.Getenv("APP_VERSION"), "dev")
	shutdownOTel, err := setupOTel(ctx, cfg.OTEL, ver)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown failed")
		}
	}()

	db, err := repo.Open(cfg.DB, cfg.OTEL.Enabled)
	if err != nil {
		return fmt.Errorf("open %s database: %w", cfg.DB.Driver, err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	a, err := app.New(cfg, db)
	if err != nil {
		return fmt.Errorf("assemble server: %w", err)
	}
	log.Info().Str("version", ver).Str("driver", cfg.DB.Driver).Msg("starting open-music-api")
	return a.Run(ctx)
}
