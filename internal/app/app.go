// Package app is the composition root: it builds the services, validators
// and plugins once, mounts them on the router and runs the HTTP server.
//
// Any failure while assembling or binding the server is returned to the
// caller, which is expected to exit. Nothing is retried.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-music-backend/internal/config"
	httpapi "github.com/tbourn/go-music-backend/internal/http"
	"github.com/tbourn/go-music-backend/internal/http/handlers/albums"
	"github.com/tbourn/go-music-backend/internal/http/handlers/songs"
	"github.com/tbourn/go-music-backend/internal/observability"
	"github.com/tbourn/go-music-backend/internal/repo"
	"github.com/tbourn/go-music-backend/internal/services"
	"github.com/tbourn/go-music-backend/internal/validator"
)

// janitorInterval is how often expired idempotency records are purged.
const janitorInterval = 10 * time.Minute

// App is an assembled, not yet listening, server.
type App struct {
	cfg    config.Config
	db     *gorm.DB
	engine *gin.Engine
	srv    *http.Server
}

// New wires one album and one song plugin, each with its own service and
// validator, onto a fresh Gin engine.
func New(cfg config.Config, db *gorm.DB) (*App, error) {
	if db == nil {
		return nil, errors.New("app: nil database")
	}

	albumPlugin := albums.New(services.NewAlbumService(db, albumRepo{}), validator.NewAlbumValidator())
	songPlugin := songs.New(services.NewSongService(db, songRepo{}), validator.NewSongValidator())

	engine := gin.New()
	store := idempotencyStore{db: db, ttl: cfg.IdempotencyTTL}
	if err := httpapi.RegisterRoutes(engine, cfg, store, albumPlugin, songPlugin); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	return &App{
		cfg:    cfg,
		db:     db,
		engine: engine,
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			MaxHeaderBytes:    cfg.MaxHeaderBytes,
		},
	}, nil
}

// Handler exposes the routed engine, mainly for tests.
func (a *App) Handler() http.Handler { return a.engine }

// Run binds the configured address and serves until ctx is cancelled. A
// bind failure (port in use, bad address) is returned before any request is
// served.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.srv.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then drains in-flight requests
// for at most ShutdownTimeout.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go a.purgeIdempotency(janitorCtx, janitorInterval)

	errCh := make(chan error, 1)
	go func() { errCh <- a.srv.Serve(ln) }()
	log.Info().Str("addr", ln.Addr().String()).Msg("server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func (a *App) purgeIdempotency(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.purgeOnce(ctx)
		}
	}
}

func (a *App) purgeOnce(ctx context.Context) int64 {
	ctx, span := observability.Tracer("app").Start(ctx, "idempotency.purge")
	defer span.End()

	n, err := repo.PurgeExpiredIdempotency(ctx, a.db, time.Now().UTC())
	if err != nil {
		span.RecordError(err)
		log.Warn().Err(err).Msg("idempotency purge failed")
		return 0
	}
	if n > 0 {
		log.Debug().Int64("purged", n).Msg("expired idempotency records removed")
	}
	return n
}
