// Package outcome is the response-normalization layer of the HTTP API.
//
// Every request ends in exactly one Outcome, recorded by the handler or
// middleware that finished it:
//
//   - Success:           business result, written as produced
//   - ClientFailure:     expected, client-caused failure authored by the app
//   - ProtocolFailure:   failure raised by the HTTP/routing layer itself
//   - UnexpectedFailure: anything else (bugs, panics, dependency errors)
//
// The Normalizer middleware turns the recorded Outcome into the wire
// response. Client failures become {"status":"fail","message":...};
// protocol failures are disclosed verbatim only when their status is on a
// small closed allow-list; everything else becomes a generic 500 envelope
// that never carries the underlying cause.
//
// Example responses:
//
//	HTTP/1.1 404 Not Found
//	{ "status": "fail", "message": "Album not found" }
//
//	HTTP/1.1 413 Request Entity Too Large
//	{ "statusCode": 413, "error": "Request Entity Too Large", "message": "..." }
//
//	HTTP/1.1 500 Internal Server Error
//	{ "status": "error", "message": "internal server error, please try again later" }
package outcome

import (
	"fmt"
	"net/http"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// GenericErrorMessage is the only message clients ever see for server-side
// failures.
const GenericErrorMessage = "internal server error, please try again later"

// Outcome is the result of a request before normalization. The set of
// variants is closed: Success, ClientFailure, ProtocolFailure and
// UnexpectedFailure.
type Outcome interface {
	outcome()
}

// Success is a business result. Payload is written unmodified with Status.
type Success struct {
	Status  int
	Payload any
}

// ClientFailure is a deliberate, client-caused failure. Message was authored
// by application code and is always safe to disclose.
type ClientFailure struct {
	Status  int
	Message string
}

// ProtocolFailure is a failure raised by the transport layer (unknown route,
// oversized or malformed body, unsupported media type, rate limiting...).
// Payload is disclosed only when Status is on the allow-list.
type ProtocolFailure struct {
	Status  int
	Payload any
}

// UnexpectedFailure wraps any other error. Cause is logged, never disclosed.
type UnexpectedFailure struct {
	Cause error
}

func (Success) outcome()           {}
func (ClientFailure) outcome()     {}
func (ProtocolFailure) outcome()   {}
func (UnexpectedFailure) outcome() {}

func (f ClientFailure) Error() string { return f.Message }

func (f ProtocolFailure) Error() string {
	return fmt.Sprintf("protocol failure: %d %s", f.Status, http.StatusText(f.Status))
}

func (f UnexpectedFailure) Error() string {
	if f.Cause == nil {
		return "unexpected failure"
	}
	return f.Cause.Error()
}

func (f UnexpectedFailure) Unwrap() error { return f.Cause }

// ProtocolPayload is the body the transport layer produces for its own
// failures.
type ProtocolPayload struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// Protocol builds a ProtocolFailure with the standard payload. An empty msg
// defaults to the status text.
func Protocol(status int, msg string) ProtocolFailure {
	text := http.StatusText(status)
	if msg == "" {
		msg = text
	}
	return ProtocolFailure{
		Status:  status,
		Payload: ProtocolPayload{StatusCode: status, Error: text, Message: msg},
	}
}

// Client builds a ClientFailure.
func Client(status int, msg string) ClientFailure {
	return ClientFailure{Status: status, Message: msg}
}

// Envelope is the uniform JSON body of the API.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Data wraps v in a success envelope.
func Data(v any) Envelope { return Envelope{Status: StatusSuccess, Data: v} }

// Message returns a success envelope carrying only a message.
func Message(msg string) Envelope { return Envelope{Status: StatusSuccess, Message: msg} }
