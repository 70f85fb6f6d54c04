// Package dashboard holds the per-instance view controllers. Each dashboard
// owns its coordinate input, its view-state machines and any selection; views
// are recomputed from the latest snapshot on every call to View.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/i474232898/crop-dashboard/internal/advisor"
	"github.com/i474232898/crop-dashboard/internal/geo"
	"github.com/i474232898/crop-dashboard/internal/market"
	"github.com/i474232898/crop-dashboard/internal/soil"
	"github.com/i474232898/crop-dashboard/internal/viewstate"
)

// Kind names a dashboard variant.
type Kind string

const (
	KindSoil   Kind = "soil"
	KindMarket Kind = "market"
)

var (
	// ErrNotReady is returned by operations that need a loaded snapshot.
	ErrNotReady = errors.New("dashboard has no data yet")
	// ErrUnsupported is returned when an operation does not apply to a dashboard kind.
	ErrUnsupported = errors.New("operation not supported by this dashboard")
	ErrUnknownKind = errors.New("unknown dashboard kind")
)

// Dashboard is the surface shared by both variants.
type Dashboard interface {
	Kind() Kind
	SetInput(c geo.Coordinate)
	// Submit commits the pending input and runs one fetch cycle.
	Submit(ctx context.Context)
	// SubmitAsync commits the input and enters Loading immediately; the fetch
	// completes in the background and is not cancelled with ctx.
	SubmitAsync(ctx context.Context)
	// Refresh re-runs the fetch for the active coordinate.
	Refresh(ctx context.Context)
	RefreshAsync(ctx context.Context)
	// Wait blocks until background cycles have resolved.
	Wait()
	View() any
}

// Options configures a dashboard.
type Options struct {
	Start      geo.Coordinate
	StaleGuard bool
	PlaceNamer geo.PlaceNamer
}

func (o Options) machineOptions() []viewstate.Option {
	if o.StaleGuard {
		return []viewstate.Option{viewstate.WithStaleGuard()}
	}
	return nil
}

// InputView reports the pending and active coordinates.
type InputView struct {
	Pending geo.Coordinate `json:"pending"`
	Active  geo.Coordinate `json:"active"`
	Place   string         `json:"place,omitempty"`
}

// base holds what both dashboards share: input, place label and the
// bookkeeping for background cycles.
type base struct {
	input *geo.Collector
	namer geo.PlaceNamer

	inflight sync.WaitGroup

	mu    sync.Mutex
	place string
}

func (b *base) init(opts Options) {
	b.input = geo.NewCollector(opts.Start)
	b.namer = opts.PlaceNamer
	if b.namer == nil {
		b.namer = geo.NoPlaceNamer{}
	}
}

func (b *base) SetInput(c geo.Coordinate) {
	b.input.SetPending(c)
}

func (b *base) Wait() {
	b.inflight.Wait()
}

// async runs fn on its own goroutine, detached from ctx cancellation.
func (b *base) async(ctx context.Context, fn func(context.Context)) {
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		fn(context.WithoutCancel(ctx))
	}()
}

// placeName looks up the label for c. Failures yield "".
func (b *base) placeName(ctx context.Context, c geo.Coordinate) string {
	name, err := b.namer.PlaceName(ctx, c)
	if err != nil {
		log.Printf("DEBUG: dashboard: no place label for %s: %v", c, err)
		return ""
	}
	return name
}

// setPlace returns a commit func storing name as the current label.
func (b *base) setPlace(name string) func() {
	return func() {
		b.mu.Lock()
		b.place = name
		b.mu.Unlock()
	}
}

func (b *base) inputView() InputView {
	b.mu.Lock()
	place := b.place
	b.mu.Unlock()
	return InputView{Pending: b.input.Pending(), Active: b.input.Active(), Place: place}
}

// Factory builds dashboards sharing the same backends and options.
type Factory struct {
	SoilSource   soil.Source
	MarketSource market.Source
	Advisor      advisor.Advisor
	GraphBase    string
	Options      Options
}

// New builds a dashboard of kind whose input starts at start.
func (f Factory) New(kind Kind, start geo.Coordinate) (Dashboard, error) {
	opts := f.Options
	opts.Start = start
	switch kind {
	case KindSoil:
		return NewSoil(f.SoilSource, f.Advisor, f.GraphBase, opts), nil
	case KindMarket:
		return NewMarket(f.MarketSource, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
