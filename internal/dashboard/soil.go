package dashboard

import (
	"context"
	"log"
	"sync"

	"github.com/i474232898/crop-dashboard/internal/advisor"
	"github.com/i474232898/crop-dashboard/internal/geo"
	"github.com/i474232898/crop-dashboard/internal/soil"
	"github.com/i474232898/crop-dashboard/internal/viewstate"
)

// Soil is the soil health dashboard. A successful soil fetch triggers a
// recommendation request whose outcome is tracked separately, so a failing
// advisor never hides the soil data.
type Soil struct {
	base

	source    soil.Source
	advisor   advisor.Advisor
	graphBase string

	data   *viewstate.Machine[soil.Snapshot]
	advice *viewstate.Machine[advisor.Advice]

	adviceMu    sync.Mutex
	lastAdvice  *advisor.Advice
	adviceInput *soil.Snapshot
}

// NewSoil builds a soil dashboard. adv may be nil, in which case the
// recommendation panel stays idle. graphBase is the soil service root used to
// resolve the weather graph asset.
func NewSoil(source soil.Source, adv advisor.Advisor, graphBase string, opts Options) *Soil {
	d := &Soil{
		source:    source,
		advisor:   adv,
		graphBase: graphBase,
		data:      viewstate.NewMachine[soil.Snapshot](opts.machineOptions()...),
		advice:    viewstate.NewMachine[advisor.Advice](opts.machineOptions()...),
	}
	d.base.init(opts)
	return d
}

func (d *Soil) Kind() Kind {
	return KindSoil
}

func (d *Soil) Submit(ctx context.Context) {
	d.start(d.input.Submit())(ctx)
}

func (d *Soil) SubmitAsync(ctx context.Context) {
	d.async(ctx, d.start(d.input.Submit()))
}

func (d *Soil) Refresh(ctx context.Context) {
	d.start(d.input.Active())(ctx)
}

func (d *Soil) RefreshAsync(ctx context.Context) {
	d.async(ctx, d.start(d.input.Active()))
}

// Retry re-issues the fetch for the active coordinate.
func (d *Soil) Retry(ctx context.Context) {
	d.Refresh(ctx)
}

// start enters Loading for coord and returns the function that completes
// the cycle.
func (d *Soil) start(coord geo.Coordinate) func(context.Context) {
	t := d.data.Begin()
	return func(ctx context.Context) {
		snap, err := d.source.Fetch(ctx, coord)
		place := d.placeName(ctx, coord)
		if !d.data.Resolve(t, snap, err, d.setPlace(place)) {
			log.Printf("DEBUG: dashboard: dropped stale soil response for %s", coord)
			return
		}
		if err != nil {
			return
		}
		d.recommend(ctx, snap)
	}
}

// RetryRecommendations re-sends the last recommendation request. It returns
// ErrNotReady when none has been made yet.
func (d *Soil) RetryRecommendations(ctx context.Context) error {
	d.adviceMu.Lock()
	input := d.adviceInput
	d.adviceMu.Unlock()
	if input == nil {
		return ErrNotReady
	}
	d.recommend(ctx, *input)
	return nil
}

func (d *Soil) recommend(ctx context.Context, snap soil.Snapshot) {
	if d.advisor == nil {
		return
	}

	d.adviceMu.Lock()
	d.adviceInput = &snap
	d.adviceMu.Unlock()

	t := d.advice.Begin()
	a, err := d.advisor.Recommend(ctx, snap)
	if !d.advice.Resolve(t, a, err) {
		return
	}
	if err != nil {
		log.Printf("ERROR: dashboard: recommendations failed: %v", err)
		return
	}

	d.adviceMu.Lock()
	d.lastAdvice = &a
	d.adviceMu.Unlock()
}

// RecommendationPanel is the advisor state. Advice holds the last successful
// result and stays set while a retry is loading or after it failed.
type RecommendationPanel struct {
	Status  viewstate.Status `json:"status"`
	Advice  *advisor.Advice  `json:"advice,omitempty"`
	Message string           `json:"message,omitempty"`
	Kind    string           `json:"kind,omitempty"`
}

// SoilView is the render-ready soil dashboard.
type SoilView struct {
	Kind            Kind                           `json:"kind"`
	Input           InputView                      `json:"input"`
	State           viewstate.State[soil.Snapshot] `json:"state"`
	Charts          *soil.Charts                   `json:"charts,omitempty"`
	Summary         *soil.Summary                  `json:"summary,omitempty"`
	WeatherGraphURL string                         `json:"weatherGraphUrl,omitempty"`
	Recommendations RecommendationPanel            `json:"recommendations"`
}

// SoilView derives the full view from the current state.
func (d *Soil) SoilView() SoilView {
	state := d.data.Current()
	v := SoilView{
		Kind:            KindSoil,
		Input:           d.inputView(),
		State:           state,
		Recommendations: d.panel(),
	}
	if snap, ok := state.Value(); ok {
		charts := soil.BuildCharts(snap)
		summary := soil.Summarize(snap)
		v.Charts = &charts
		v.Summary = &summary
		v.WeatherGraphURL = soil.WeatherGraphURL(d.graphBase, snap)
	}
	return v
}

func (d *Soil) View() any {
	return d.SoilView()
}

func (d *Soil) panel() RecommendationPanel {
	state := d.advice.Current()
	d.adviceMu.Lock()
	last := d.lastAdvice
	d.adviceMu.Unlock()

	p := RecommendationPanel{Status: state.Status(), Advice: last}
	if state.Status() == viewstate.StatusError {
		p.Message = state.Message()
		p.Kind = string(state.Kind())
	}
	return p
}
