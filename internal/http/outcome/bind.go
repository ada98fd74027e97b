package outcome

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
)

// Messages used for body decoding failures.
const (
	msgInvalidJSON     = "Invalid request payload JSON format"
	msgPayloadRequired = "request payload is required"
)

// BindJSON decodes the request body into dst. The returned error is already
// an outcome failure, ready for Fail:
//   - body over the size limit:    ProtocolFailure 413
//   - malformed JSON:              ProtocolFailure 400
//   - empty body / wrong types:    ClientFailure 400
//   - anything else:               UnexpectedFailure
func BindJSON(c *gin.Context, dst any) error {
	if c.Request == nil || c.Request.Body == nil || c.Request.Body == http.NoBody {
		return Client(http.StatusBadRequest, msgPayloadRequired)
	}
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var (
		mbe *http.MaxBytesError
		se  *json.SyntaxError
		ute *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &mbe):
		return TooLarge(mbe.Limit)
	case errors.Is(err, io.EOF):
		return Client(http.StatusBadRequest, msgPayloadRequired)
	case errors.As(err, &se), errors.Is(err, io.ErrUnexpectedEOF):
		return Protocol(http.StatusBadRequest, msgInvalidJSON)
	case errors.As(err, &ute):
		if ute.Field == "" {
			return Client(http.StatusBadRequest, fmt.Sprintf("payload must be %s", jsonKind(ute.Type)))
		}
		return Client(http.StatusBadRequest, fmt.Sprintf("%q must be %s", ute.Field, jsonKind(ute.Type)))
	default:
		return UnexpectedFailure{Cause: err}
	}
}

// jsonKind names a Go type the way a JSON client thinks about it, with its
// article.
func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}
