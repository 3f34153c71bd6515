package archive

import (
	"errors"
	"fmt"
)

// Origin classifies where an archive call failed.
type Origin string

const (
	// OriginTransport covers network-level failures: DNS, connection
	// refused, and client-side timeouts.
	OriginTransport Origin = "transport"
	// OriginStatus covers non-2xx responses from the archive API.
	OriginStatus Origin = "status"
	// OriginDecode covers 2xx responses whose body does not match the
	// expected schema.
	OriginDecode Origin = "decode"
)

// Error is the single failure type returned by the client. StatusCode is
// set only for OriginStatus.
type Error struct {
	Origin     Origin
	Operation  string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	switch e.Origin {
	case OriginStatus:
		return fmt.Sprintf("%s: archive HTTP %d: %s", e.Operation, e.StatusCode, e.Message)
	case OriginDecode:
		return fmt.Sprintf("%s: decode archive response: %s", e.Operation, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Operation, e.Message)
	}
}

// AsError unwraps an *Error from err, or returns nil.
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
