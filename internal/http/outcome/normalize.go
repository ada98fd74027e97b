package outcome

import "net/http"

// disclosable is the closed set of protocol statuses whose payload may reach
// the client. Anything not listed here is masked as a generic 500.
var disclosable = map[int]struct{}{
	http.StatusBadRequest:            {},
	http.StatusUnauthorized:          {},
	http.StatusNotFound:              {},
	http.StatusRequestEntityTooLarge: {},
	http.StatusUnsupportedMediaType:  {},
}

// Disclosable reports whether a protocol failure with status may be shown
// to the client verbatim.
func Disclosable(status int) bool {
	_, ok := disclosable[status]
	return ok
}

// Response is a normalized status code and body.
type Response struct {
	Status int
	Body   any
}

// Normalize maps an Outcome to the response that goes on the wire. The
// boolean is false when o is not a recognized Outcome (nil included); the
// caller must then leave the response untouched.
//
// Check order matters: client failures are always trusted, protocol
// failures conditionally, everything else never.
func Normalize(o Outcome) (Response, bool) {
	switch v := o.(type) {
	case Success:
		return Response{Status: v.Status, Body: v.Payload}, true
	case ClientFailure:
		return Response{Status: v.Status, Body: Envelope{Status: StatusFail, Message: v.Message}}, true
	case ProtocolFailure:
		if Disclosable(v.Status) {
			return Response{Status: v.Status, Body: v.Payload}, true
		}
		return internalError(), true
	case UnexpectedFailure:
		return internalError(), true
	default:
		return Response{}, false
	}
}

func internalError() Response {
	return Response{
		Status: http.StatusInternalServerError,
		Body:   Envelope{Status: StatusError, Message: GenericErrorMessage},
	}
}
