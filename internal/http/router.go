// Package httpapi wires the HTTP transport (Gin) to the middleware stack,
// the response normalizer and the resource plugins.
package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/tbourn/go-music-backend/docs"
	"github.com/tbourn/go-music-backend/internal/config"
	"github.com/tbourn/go-music-backend/internal/http/middleware"
	"github.com/tbourn/go-music-backend/internal/http/outcome"
	"github.com/tbourn/go-music-backend/internal/http/plugin"
)

// RegisterRoutes attaches the middleware stack, the operational endpoints
// and the given plugins to r. store may be nil, in which case
// Idempotency-Key headers are validated but never replayed.
//
// Middleware order matters:
//  1. OpenTelemetry, RequestID, access log, metrics: observe the final response
//  2. gzip, CORS, security headers: decorate it
//  3. outcome.Normalizer: writes the response for every outcome below it
//  4. Recovery: turns panics into unexpected failures
//  5. body limit, JSON media type, idempotency replay, rate limiting
//
// When plugin.Register rejects the plugin set, no plugin route is mounted
// and the error is returned.
func RegisterRoutes(r *gin.Engine, cfg config.Config, store middleware.IdempotencyStore, plugins ...plugin.Plugin) error {
	// Method mismatches are reported as unknown routes.
	r.HandleMethodNotAllowed = false

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	if cfg.LogRedact {
		r.Use(middleware.RedactingLogger(middleware.RedactOptions{
			MaskHeaders: []string{"X-API-Key", middleware.HeaderIdempotencyKey},
		}))
	} else {
		r.Use(middleware.Logger())
	}
	r.Use(middleware.Metrics())

	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// gin-contrib/cors only answers requests carrying an Origin header;
	// every response advertises "*" regardless.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Next()
	})
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", middleware.HeaderIdempotentReplay},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:    cfg.Security.EnableHSTS,
		HSTSMaxAge:    cfg.Security.HSTSMaxAge,
		EnablePolicy:  true,
		ExposeHeaders: []string{"X-Request-ID", middleware.HeaderIdempotentReplay},
	}))

	r.Use(outcome.Normalizer())
	r.Use(middleware.Recovery())

	r.Use(middleware.LimitBody(cfg.MaxBodyBytes))
	r.Use(middleware.RequireJSON())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, store))
	if cfg.RateRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP()).Handler())
	}

	r.NoRoute(func(c *gin.Context) {
		outcome.Abort(c, outcome.Protocol(http.StatusNotFound, ""))
	})

	r.GET("/health", func(c *gin.Context) {
		outcome.Respond(c, http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return plugin.Register(groupWithPrefix(r, cfg.APIBasePath), plugins...)
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
