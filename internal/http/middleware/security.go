// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, which attaches a conservative set of
// HTTP security headers suitable for a JSON API behind a reverse proxy.
// HSTS is opt-in and only sent for requests that arrived over HTTPS.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// defaultHSTSMaxAge applies when SecurityOptions.HSTSMaxAge is not positive.
const defaultHSTSMaxAge = 180 * 24 * time.Hour

// SecurityOptions configures HTTP security headers emitted by SecurityHeaders.
type SecurityOptions struct {
	EnableHSTS   bool          // set true only when traffic is HTTPS end-to-end
	HSTSMaxAge   time.Duration // e.g., 180 * 24h
	NoStore      bool          // add Cache-Control: no-store
	EnablePolicy bool          // include Permissions-Policy, etc.
	// ExposeHeaders are appended to Access-Control-Expose-Headers so
	// browser clients can read them (e.g. X-Request-ID).
	ExposeHeaders []string
}

// SecurityHeaders returns a Gin middleware that adds security headers to
// each response.
//
// Always: X-Content-Type-Options nosniff, X-Frame-Options DENY,
// Referrer-Policy no-referrer. Optionally Permissions-Policy and
// X-Permitted-Cross-Domain-Policies (EnablePolicy), no-store caching
// (NoStore) and Strict-Transport-Security (EnableHSTS over HTTPS).
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	hsts := "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}

		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		for _, name := range opt.ExposeHeaders {
			appendExposed(h, name)
		}

		c.Next()
	}
}

// appendExposed adds name to Access-Control-Expose-Headers unless present.
func appendExposed(h http.Header, name string) {
	const hdr = "Access-Control-Expose-Headers"
	cur := h.Get(hdr)
	switch {
	case cur == "":
		h.Set(hdr, name)
	case !containsToken(cur, name):
		h.Set(hdr, cur+", "+name)
	}
}

func containsToken(list, name string) bool {
	for _, p := range strings.Split(list, ",") {
		if strings.EqualFold(strings.TrimSpace(p), name) {
			return true
		}
	}
	return false
}

// isHTTPS reports whether the incoming request used HTTPS either directly
// (r.TLS != nil) or via a reverse proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
