package dashboard

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/i474232898/crop-dashboard/internal/chart"
	"github.com/i474232898/crop-dashboard/internal/geo"
	"github.com/i474232898/crop-dashboard/internal/market"
	"github.com/i474232898/crop-dashboard/internal/viewstate"
)

// MetricTab selects which pair of extrema the metrics panel shows.
type MetricTab string

const (
	TabTrends     MetricTab = "trends"
	TabVolatility MetricTab = "volatility"
	TabPrices     MetricTab = "prices"
)

var (
	ErrUnknownCrop = errors.New("crop not in current data")
	ErrUnknownTab  = errors.New("unknown metrics tab")
)

// ParseMetricTab validates a tab name.
func ParseMetricTab(s string) (MetricTab, error) {
	switch t := MetricTab(s); t {
	case TabTrends, TabVolatility, TabPrices:
		return t, nil
	default:
		return "", ErrUnknownTab
	}
}

// Market is the crop market dashboard.
type Market struct {
	base

	source market.Source
	data   *viewstate.Machine[market.Snapshot]

	selMu    sync.Mutex
	selected string
	tab      MetricTab
}

func NewMarket(source market.Source, opts Options) *Market {
	d := &Market{
		source: source,
		data:   viewstate.NewMachine[market.Snapshot](opts.machineOptions()...),
		tab:    TabTrends,
	}
	d.base.init(opts)
	return d
}

func (d *Market) Kind() Kind {
	return KindMarket
}

func (d *Market) Submit(ctx context.Context) {
	d.start(d.input.Submit())(ctx)
}

func (d *Market) SubmitAsync(ctx context.Context) {
	d.async(ctx, d.start(d.input.Submit()))
}

func (d *Market) Refresh(ctx context.Context) {
	d.start(d.input.Active())(ctx)
}

func (d *Market) RefreshAsync(ctx context.Context) {
	d.async(ctx, d.start(d.input.Active()))
}

func (d *Market) start(coord geo.Coordinate) func(context.Context) {
	t := d.data.Begin()
	return func(ctx context.Context) {
		snap, err := d.source.Fetch(ctx, coord)
		place := d.placeName(ctx, coord)
		commit := []func(){d.setPlace(place)}
		if err == nil {
			commit = append(commit, func() { d.selectFirst(snap) })
		}
		if !d.data.Resolve(t, snap, err, commit...) {
			log.Printf("DEBUG: dashboard: dropped stale market response for %s", coord)
		}
	}
}

// selectFirst focuses the first crop of a freshly loaded snapshot.
func (d *Market) selectFirst(snap market.Snapshot) {
	d.selMu.Lock()
	d.selected = ""
	if len(snap.CropSummaries) > 0 {
		d.selected = snap.CropSummaries[0].Crop
	}
	d.selMu.Unlock()
}

// Select focuses crop. It must be present in the current snapshot.
func (d *Market) Select(crop string) error {
	snap, ok := d.data.Current().Value()
	if !ok {
		return ErrNotReady
	}
	if _, found := snap.Find(crop); !found {
		return ErrUnknownCrop
	}
	d.selMu.Lock()
	d.selected = crop
	d.selMu.Unlock()
	return nil
}

func (d *Market) ClearSelection() {
	d.selMu.Lock()
	d.selected = ""
	d.selMu.Unlock()
}

func (d *Market) SetMetricTab(tab MetricTab) error {
	if _, err := ParseMetricTab(string(tab)); err != nil {
		return err
	}
	d.selMu.Lock()
	d.tab = tab
	d.selMu.Unlock()
	return nil
}

// Extreme is one labelled crop in the metrics panel.
type Extreme struct {
	Label string              `json:"label"`
	Crop  *market.CropSummary `json:"crop"`
}

// MetricsPanel shows the backend-computed extrema for the active tab.
type MetricsPanel struct {
	Tab     MetricTab `json:"tab"`
	Extrema []Extreme `json:"extrema"`
}

func metricsPanel(tab MetricTab, s market.Snapshot) MetricsPanel {
	p := MetricsPanel{Tab: tab}
	switch tab {
	case TabVolatility:
		p.Extrema = []Extreme{{"Least Volatile Crop", s.LeastVolatile}, {"Most Volatile Crop", s.MostVolatile}}
	case TabPrices:
		p.Extrema = []Extreme{{"Highest Current Price", s.BestPrice}, {"Lowest Current Price", s.WorstPrice}}
	default:
		p.Extrema = []Extreme{{"Best Price Trend", s.BestTrend}, {"Worst Price Trend", s.WorstTrend}}
	}
	return p
}

// CropDetail is the focused crop's panel.
type CropDetail struct {
	Crop           market.CropSummary `json:"crop"`
	Forecast       market.TableRow    `json:"forecast"`
	Advice         market.Advice      `json:"advice"`
	Recommendation string             `json:"recommendation"`
	Analysis       string             `json:"analysis"`
}

// MarketCharts groups the market chart configs.
type MarketCharts struct {
	Prices     *chart.Config `json:"prices"`
	Trends     *chart.Config `json:"trends"`
	Volatility *chart.Config `json:"volatility"`
}

// MarketView is the render-ready market dashboard.
type MarketView struct {
	Kind           Kind                             `json:"kind"`
	Input          InputView                        `json:"input"`
	State          viewstate.State[market.Snapshot] `json:"state"`
	OverallSummary string                           `json:"overallSummary,omitempty"`

	Charts         *MarketCharts               `json:"charts,omitempty"`
	PriceRows      []market.PriceComparisonRow `json:"priceRows,omitempty"`
	TrendRows      []market.TrendRow           `json:"trendRows,omitempty"`
	VolatilityRows []market.VolatilityRow      `json:"volatilityRows,omitempty"`
	Table          []market.TableRow           `json:"table,omitempty"`
	LongTerm       []market.CropSummary        `json:"longTerm"`
	ShortTerm      []market.CropSummary        `json:"shortTerm"`
	Metrics        *MetricsPanel               `json:"metrics,omitempty"`
	SelectedCrop   string                      `json:"selectedCrop,omitempty"`
	Selected       *CropDetail                 `json:"selected,omitempty"`
}

// MarketView derives the full view from the current state. The selection is
// resolved by name against the live crop list; a name that is no longer
// present yields no detail.
func (d *Market) MarketView() MarketView {
	state := d.data.Current()
	d.selMu.Lock()
	selected, tab := d.selected, d.tab
	d.selMu.Unlock()

	v := MarketView{
		Kind:         KindMarket,
		Input:        d.inputView(),
		State:        state,
		SelectedCrop: selected,
	}

	snap, ok := state.Value()
	if !ok {
		return v
	}

	crops := snap.CropSummaries
	metrics := metricsPanel(tab, snap)
	v.OverallSummary = snap.OverallSummary
	v.Charts = &MarketCharts{
		Prices:     market.PriceChart(crops),
		Trends:     market.TrendChart(crops),
		Volatility: market.VolatilityChart(crops),
	}
	v.PriceRows = market.PriceComparisonRows(crops)
	v.TrendRows = market.TrendRows(crops)
	v.VolatilityRows = market.VolatilityRows(crops)
	v.Table = market.TableRows(crops)
	v.LongTerm = market.LongTerm(crops)
	v.ShortTerm = market.ShortTerm(crops)
	v.Metrics = &metrics

	if selected == "" {
		return v
	}
	if crop, found := snap.Find(selected); found {
		lookup := market.NewLookup(snap)
		v.Selected = &CropDetail{
			Crop:           crop,
			Forecast:       market.TableRows([]market.CropSummary{crop})[0],
			Advice:         market.AdviceFor(crop.LongTermTrend),
			Recommendation: lookup.Recommendation(crop.Crop),
			Analysis:       lookup.Analysis(crop.Crop),
		}
	}
	return v
}

func (d *Market) View() any {
	return d.MarketView()
}
