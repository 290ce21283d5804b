package api

import "errors"

var (
	// ErrNoData is the sentinel behind every call that produced nothing for the
	// caller to decode. The more specific errors below all match it with errors.Is.
	ErrNoData = errors.New("no data")
	// ErrSessionExpired is returned when the server answered 401
	ErrSessionExpired = wrapNoData("session expired")
	// ErrServerUnreachable is returned on DNS, connection, and timeout failures
	ErrServerUnreachable = wrapNoData("server unreachable")
	// ErrMalformedResponse is returned when a body is not the JSON the caller expected
	ErrMalformedResponse = errors.New("malformed response")
)

type noDataError struct {
	msg string
}

func (e *noDataError) Error() string { return e.msg }

func (e *noDataError) Unwrap() error { return ErrNoData }

func wrapNoData(msg string) error {
	return &noDataError{msg: msg}
}
