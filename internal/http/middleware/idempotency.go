// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotent creates. A POST carrying an
// Idempotency-Key header is looked up in an IdempotencyStore under the scope
// "<METHOD> <route>". A live record is replayed as the original Success
// (status and body) without reaching the handler or the rate limiter. A
// first-time request that ends in a 2xx Success has its response stored for
// later retries, together with a SHA-256 of the request body. Reusing a key
// with a different body is rejected instead of replayed.
package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-music-backend/internal/http/outcome"
)

// HeaderIdempotencyKey is the request header carrying the idempotency key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplay marks responses served from a stored record.
const HeaderIdempotentReplay = "Idempotent-Replayed"

// Context keys used internally to stash idempotency state.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
)

// ErrIdempotencyConflict is returned by IdempotencyStore.Save when another
// request stored the same (scope, key) first. It is not logged.
var ErrIdempotencyConflict = errors.New("idempotency record already exists")

// StoredResponse is a previously recorded Success. RequestHash identifies the
// request body that produced it; an empty hash matches any body.
type StoredResponse struct {
	Status      int
	Body        []byte
	RequestHash string
}

// Message for a key replayed with a different request body.
const msgIdempotencyMismatch = "Idempotency-Key reused with a different payload"

// IdempotencyStore persists replayable responses. Lookup returns (nil, nil)
// when no live record exists.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string, now time.Time) (*StoredResponse, error)
	Save(ctx context.Context, scope, key string, res StoredResponse) error
}

// IdempotencyOptions configures header validation.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. Defaults to ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// GetIdempotencyKey returns the validated key stashed by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the response was served from a stored record.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyValidator returns the idempotency middleware.
//
// Behavior for POST requests on a matched route:
//   - no header: no-op
//   - malformed header: 400 ProtocolFailure
//   - live record, same body: replay as Success, chain aborted
//   - live record, different body: 400 ProtocolFailure
//   - body over the size limit: 413 ProtocolFailure
//   - otherwise: run the chain, then store a 2xx Success
//
// Lookup and save failures are logged and never fail the request. Other
// methods ignore the header.
func IdempotencyValidator(opts IdempotencyOptions, store IdempotencyStore) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || c.Request.Method != http.MethodPost || c.FullPath() == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			outcome.Abort(c, outcome.Protocol(http.StatusBadRequest, "Invalid Idempotency-Key header"))
			return
		}
		c.Set(ctxKeyIdemKey, key)
		if store == nil {
			c.Next()
			return
		}

		hash, err := hashBody(c.Request)
		if err != nil {
			outcome.Fail(c, err)
			return
		}

		ctx := c.Request.Context()
		scope := c.Request.Method + " " + c.FullPath()

		prev, err := store.Lookup(ctx, scope, key, time.Now().UTC())
		if err != nil {
			LoggerFrom(c).Warn().Err(err).Str("scope", scope).Msg("idempotency lookup failed")
		}
		if prev != nil {
			if prev.RequestHash != "" && prev.RequestHash != hash {
				outcome.Abort(c, outcome.Protocol(http.StatusBadRequest, msgIdempotencyMismatch))
				return
			}
			c.Set(ctxKeyIdemReplay, true)
			c.Header(HeaderIdempotentReplay, "true")
			outcome.Abort(c, outcome.Success{Status: prev.Status, Payload: json.RawMessage(prev.Body)})
			return
		}

		c.Next()

		o, ok := outcome.From(c)
		if !ok {
			return
		}
		s, ok := o.(outcome.Success)
		if !ok || s.Status < 200 || s.Status > 299 || s.Payload == nil {
			return
		}
		body, err := json.Marshal(s.Payload)
		if err != nil {
			LoggerFrom(c).Warn().Err(err).Msg("idempotency encode failed")
			return
		}
		if err := store.Save(ctx, scope, key, StoredResponse{Status: s.Status, Body: body, RequestHash: hash}); err != nil &&
			!errors.Is(err, ErrIdempotencyConflict) {
			LoggerFrom(c).Warn().Err(err).Str("scope", scope).Msg("idempotency save failed")
		}
	}
}

// hashBody returns the hex SHA-256 of the request body and puts the bytes
// back for the handler. Valid JSON is compacted first, so whitespace alone
// never counts as a different payload.
func hashBody(r *http.Request) (string, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return hex.EncodeToString(sha256.New().Sum(nil)), nil
	}
	data, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return "", err
	}
	r.Body = io.NopCloser(bytes.NewReader(data))

	var compact bytes.Buffer
	if json.Compact(&compact, data) == nil {
		data = compact.Bytes()
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
