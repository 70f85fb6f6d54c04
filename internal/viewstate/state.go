package viewstate

import (
	"encoding/json"

	"github.com/i474232898/crop-dashboard/internal/fetch"
)

// Status names the variant of a State.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// State is a tagged variant: Idle, Loading, Ready(value) or Error(message).
// The zero value is Idle.
type State[T any] struct {
	status  Status
	value   T
	message string
	kind    fetch.Kind
}

func Idle[T any]() State[T] {
	return State[T]{status: StatusIdle}
}

func Loading[T any]() State[T] {
	return State[T]{status: StatusLoading}
}

func Ready[T any](v T) State[T] {
	return State[T]{status: StatusReady, value: v}
}

// Failed builds an Error state from err, keeping its fetch.Kind.
func Failed[T any](err error) State[T] {
	return State[T]{status: StatusError, message: fetch.Message(err), kind: fetch.KindOf(err)}
}

func (s State[T]) Status() Status {
	if s.status == "" {
		return StatusIdle
	}
	return s.status
}

// Value returns the snapshot when the state is Ready.
func (s State[T]) Value() (T, bool) {
	if s.status != StatusReady {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Message returns the error message for an Error state.
func (s State[T]) Message() string {
	return s.message
}

// Kind returns the error classification for an Error state.
func (s State[T]) Kind() fetch.Kind {
	return s.kind
}

// Match calls exactly one of the handlers depending on the variant.
func Match[T, R any](s State[T], idle func() R, loading func() R, ready func(T) R, failed func(msg string, kind fetch.Kind) R) R {
	switch s.Status() {
	case StatusLoading:
		return loading()
	case StatusReady:
		return ready(s.value)
	case StatusError:
		return failed(s.message, s.kind)
	default:
		return idle()
	}
}

type stateJSON[T any] struct {
	Status  Status     `json:"status"`
	Data    *T         `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Kind    fetch.Kind `json:"kind,omitempty"`
}

func (s State[T]) MarshalJSON() ([]byte, error) {
	out := stateJSON[T]{Status: s.Status(), Message: s.message, Kind: s.kind}
	if v, ok := s.Value(); ok {
		out.Data = &v
	}
	return json.Marshal(out)
}
