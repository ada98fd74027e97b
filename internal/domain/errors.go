package domain

import "net/http"

// ClientError is a failure caused by the client and safe to show to it.
// Services and validators return it for expected conditions (invalid
// payload, missing resource); the HTTP layer turns it into a "fail"
// envelope carrying StatusCode and Message.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string { return e.Message }

// NewClientError returns a ClientError with an explicit status code.
func NewClientError(status int, msg string) *ClientError {
	return &ClientError{StatusCode: status, Message: msg}
}

// NewInvariantError reports a payload that violates its schema (400).
func NewInvariantError(msg string) *ClientError {
	return NewClientError(http.StatusBadRequest, msg)
}

// NewNotFoundError reports a missing resource (404).
func NewNotFoundError(msg string) *ClientError {
	return NewClientError(http.StatusNotFound, msg)
}
