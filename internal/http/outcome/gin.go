package outcome

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-music-backend/internal/domain"
)

// contextKey is the Gin context key under which the Outcome is stored.
const contextKey = "outcome"

// Set records o as the request's Outcome, replacing any earlier one.
func Set(c *gin.Context, o Outcome) {
	c.Set(contextKey, o)
}

// From returns the Outcome recorded for the request, if any.
func From(c *gin.Context) (Outcome, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	o, ok := v.(Outcome)
	return o, ok && o != nil
}

// Respond records a Success with the given status and payload.
func Respond(c *gin.Context, status int, payload any) {
	Set(c, Success{Status: status, Payload: payload})
}

// Abort records o and stops the handler chain. The cause of an
// UnexpectedFailure is attached to the context errors so the access logger
// can report it.
func Abort(c *gin.Context, o Outcome) {
	if u, ok := o.(UnexpectedFailure); ok && u.Cause != nil {
		_ = c.Error(u.Cause)
	}
	Set(c, o)
	c.Abort()
}

// Fail classifies err with FromError and aborts with the result. A nil err
// is ignored.
func Fail(c *gin.Context, err error) {
	if err == nil {
		return
	}
	Abort(c, FromError(err))
}

// FromError decides which failure variant err is:
//   - outcome failures are returned as they are
//   - *domain.ClientError becomes a ClientFailure with its own status
//   - *http.MaxBytesError becomes a 413 ProtocolFailure
//   - anything else is an UnexpectedFailure
//
// FromError(nil) returns nil.
func FromError(err error) Outcome {
	if err == nil {
		return nil
	}
	var cf ClientFailure
	if errors.As(err, &cf) {
		return cf
	}
	var pf ProtocolFailure
	if errors.As(err, &pf) {
		return pf
	}
	var uf UnexpectedFailure
	if errors.As(err, &uf) {
		return uf
	}
	var ce *domain.ClientError
	if errors.As(err, &ce) {
		return ClientFailure{Status: ce.StatusCode, Message: ce.Message}
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return TooLarge(mbe.Limit)
	}
	return UnexpectedFailure{Cause: err}
}

// Normalizer returns the post-processing middleware that writes the
// normalized response for every request passing through it.
//
// After the rest of the chain has run:
//   - if a response was already written, it is left as is (this also makes
//     a second Normalizer in the chain a no-op);
//   - otherwise the recorded Outcome is normalized and written;
//   - without a recorded Outcome, the last context error (if any) is
//     classified with FromError;
//   - with neither, the response passes through untouched.
//
// Install it before recovery and every route-level middleware.
func Normalizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		o, ok := From(c)
		if !ok {
			last := c.Errors.Last()
			if last == nil {
				return
			}
			o = FromError(last.Err)
		}
		res, handled := Normalize(o)
		if !handled {
			return
		}
		write(c, res)
	}
}

func write(c *gin.Context, res Response) {
	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	if res.Body == nil || status == http.StatusNoContent || status == http.StatusNotModified {
		c.Status(status)
		c.Writer.WriteHeaderNow()
		return
	}
	c.JSON(status, res.Body)
}

// TooLarge is the 413 ProtocolFailure for a body over limit bytes.
func TooLarge(limit int64) ProtocolFailure {
	return Protocol(http.StatusRequestEntityTooLarge,
		fmt.Sprintf("Payload content length greater than maximum allowed: %d", limit))
}
