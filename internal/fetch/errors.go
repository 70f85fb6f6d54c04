package fetch

import (
	"errors"
	"fmt"
)

// Kind classifies a failed fetch for display.
type Kind string

const (
	KindNetwork Kind = "network"
	KindHTTP    Kind = "http"
	KindParse   Kind = "parse"
	KindConfig  Kind = "config"
)

// Error is the single error type surfaced by the fetch boundary.
type Error struct {
	Kind   Kind
	Status int // set for KindHTTP only
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("HTTP error! Status: %d", e.Status)
	case KindParse:
		return fmt.Sprintf("invalid response: %v", e.Err)
	case KindConfig:
		return fmt.Sprintf("configuration error: %v", e.Err)
	default:
		return fmt.Sprintf("Failed to fetch data: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NetworkError wraps a failure where no response was received.
func NetworkError(err error) error {
	return &Error{Kind: KindNetwork, Err: err}
}

// HTTPError reports a non-2xx response.
func HTTPError(status int) error {
	return &Error{Kind: KindHTTP, Status: status, Err: fmt.Errorf("status %d", status)}
}

// ParseError wraps a body that could not be decoded.
func ParseError(err error) error {
	return &Error{Kind: KindParse, Err: err}
}

// ConfigError wraps a missing or invalid local setting (e.g. credentials).
func ConfigError(err error) error {
	return &Error{Kind: KindConfig, Err: err}
}

// KindOf reports the Kind of err. Errors that did not pass through this
// package are treated as network failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindNetwork
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Status
	}
	return 0
}

// Message returns the text shown for err. Errors that did not pass through
// this package get the network prefix, matching KindOf.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Error()
	}
	return NetworkError(err).Error()
}
