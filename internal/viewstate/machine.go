package viewstate

import (
	"context"
	"sync"
)

// Ticket identifies one fetch cycle started by Machine.Begin.
type Ticket uint64

// Option configures a Machine.
type Option func(*config)

type config struct {
	staleGuard bool
}

// WithStaleGuard makes the machine drop resolutions of any cycle that is not
// the most recently started one. Without it the last resolution wins.
func WithStaleGuard() Option {
	return func(c *config) { c.staleGuard = true }
}

// Machine drives a State through fetch cycles:
// Idle/Ready/Error -> Loading on Begin, Loading -> Ready/Error on Resolve.
type Machine[T any] struct {
	mu     sync.Mutex
	state  State[T]
	latest Ticket
	cfg    config
}

// NewMachine returns a Machine in the Idle state.
func NewMachine[T any](opts ...Option) *Machine[T] {
	m := &Machine[T]{state: Idle[T]()}
	for _, opt := range opts {
		opt(&m.cfg)
	}
	return m
}

// Begin starts a new cycle. Any previous snapshot is discarded.
func (m *Machine[T]) Begin() Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest++
	m.state = Loading[T]()
	return m.latest
}

// Resolve applies the outcome of the cycle identified by t and reports whether
// it was applied. Overlapping cycles race: whichever resolves last overwrites
// the state, unless the stale guard is enabled.
//
// Each commit func runs under the machine lock after the state is written and
// only when the resolution is applied. Readers that go through Current never
// observe the new state without those side effects.
func (m *Machine[T]) Resolve(t Ticket, v T, err error, commit ...func()) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.staleGuard && t != m.latest {
		return false
	}

	if err != nil {
		m.state = Failed[T](err)
	} else {
		m.state = Ready(v)
	}
	for _, fn := range commit {
		fn()
	}
	return true
}

// Run executes one full cycle synchronously and returns the resulting state.
func (m *Machine[T]) Run(ctx context.Context, fn func(context.Context) (T, error)) State[T] {
	t := m.Begin()
	v, err := fn(ctx)
	m.Resolve(t, v, err)
	return m.Current()
}

// Current returns the present state.
func (m *Machine[T]) Current() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Reset returns the machine to Idle.
func (m *Machine[T]) Reset() {
	m.mu.Lock()
	m.state = Idle[T]()
	m.mu.Unlock()
}
