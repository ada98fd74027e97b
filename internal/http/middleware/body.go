// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file guards request bodies: LimitBody caps their size (413) and
// RequireJSON rejects payloads that are not JSON (415). Both record
// ProtocolFailures, which the normalizer discloses verbatim.
package middleware

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-music-backend/internal/http/outcome"
)

// LimitBody rejects requests whose declared Content-Length exceeds max and
// wraps the body so that reading past max fails with *http.MaxBytesError
// (mapped to 413 by outcome.BindJSON). A max <= 0 disables the limit.
func LimitBody(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if max <= 0 || c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		if c.Request.ContentLength > max {
			outcome.Abort(c, outcome.TooLarge(max))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}

// RequireJSON rejects POST, PUT and PATCH requests that carry a body with a
// media type other than application/json or a +json suffix. Requests without
// a body pass through so that handlers can report the missing payload, and
// unmatched routes pass through to the 404.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.FullPath() == "" {
			c.Next()
			return
		}
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}
		if !hasBody(c.Request) || isJSON(c.GetHeader("Content-Type")) {
			c.Next()
			return
		}
		outcome.Abort(c, outcome.Protocol(http.StatusUnsupportedMediaType, ""))
	}
}

func hasBody(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return false
	}
	// -1 means unknown (chunked), which may still carry data.
	return r.ContentLength != 0
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
