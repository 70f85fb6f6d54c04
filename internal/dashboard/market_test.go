package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/i474232898/crop-dashboard/internal/fetch"
	"github.com/i474232898/crop-dashboard/internal/geo"
	"github.com/i474232898/crop-dashboard/internal/market"
	"github.com/i474232898/crop-dashboard/internal/viewstate"
)

// fakeMarket serves snaps keyed by latitude, or err when set. A non-nil gate
// blocks every fetch until it is closed.
type fakeMarket struct {
	mu    sync.Mutex
	snaps map[float64]market.Snapshot
	err   error
	gate  chan struct{}
}

func (f *fakeMarket) Fetch(_ context.Context, c geo.Coordinate) (market.Snapshot, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return market.Snapshot{}, f.err
	}
	return f.snaps[c.Lat], nil
}

func snapshotOf(names ...string) market.Snapshot {
	s := market.Snapshot{
		Recommendation: []string{"Wheat: hold.", "Onion prices will fall."},
		CropAnalysis:   []string{"CROP ANALYSIS: Wheat\nstable"},
	}
	for i, n := range names {
		s.CropSummaries = append(s.CropSummaries, market.CropSummary{
			Crop:           n,
			ShortTermTrend: float64(10 - i),
			LongTermTrend:  float64(20 - 15*i),
		})
	}
	if len(s.CropSummaries) > 0 {
		s.BestTrend = &s.CropSummaries[0]
	}
	return s
}

func TestMarketSelectsFirstCropAfterLoad(t *testing.T) {
	src := &fakeMarket{snaps: map[float64]market.Snapshot{geo.DefaultLat: snapshotOf("Wheat", "Onion")}}
	d := NewMarket(src, Options{Start: geo.Default()})
	d.Submit(context.Background())

	v := d.MarketView()
	if v.State.Status() != viewstate.StatusReady {
		t.Fatalf("unexpected state %+v", v.State)
	}
	if v.Selected == nil || v.Selected.Crop.Crop != "Wheat" {
		t.Fatalf("expected Wheat selected, got %+v", v.Selected)
	}
	if v.Selected.Recommendation != "Wheat: hold." || v.Selected.Analysis != "CROP ANALYSIS: Wheat\nstable" {
		t.Fatalf("unexpected texts %+v", v.Selected)
	}
	if v.Selected.Advice.Tier != "strong" {
		t.Fatalf("unexpected advice %+v", v.Selected.Advice)
	}
	if len(v.Table) != 2 || len(v.LongTerm) != 2 || v.Charts == nil {
		t.Fatalf("unexpected derived data %+v", v)
	}
	if v.Metrics == nil || v.Metrics.Tab != TabTrends || v.Metrics.Extrema[0].Crop.Crop != "Wheat" {
		t.Fatalf("unexpected metrics %+v", v.Metrics)
	}
}

func TestMarketSelectByKey(t *testing.T) {
	src := &fakeMarket{snaps: map[float64]market.Snapshot{geo.DefaultLat: snapshotOf("Wheat", "Onion")}}
	d := NewMarket(src, Options{Start: geo.Default()})

	if err := d.Select("Wheat"); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}

	d.Submit(context.Background())
	if err := d.Select("Onion"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := d.MarketView()
	if v.Selected.Crop.Crop != "Onion" || v.Selected.Recommendation != "Onion prices will fall." {
		t.Fatalf("unexpected selection %+v", v.Selected)
	}
	if v.Selected.Analysis != market.NoAnalysis {
		t.Fatalf("expected analysis fallback, got %q", v.Selected.Analysis)
	}
	if err := d.Select("Maize"); !errors.Is(err, ErrUnknownCrop) {
		t.Fatalf("expected ErrUnknownCrop, got %v", err)
	}

	d.ClearSelection()
	if d.MarketView().Selected != nil {
		t.Fatal("expected no selection")
	}
}

func TestMarketSelectionDisappearsWithCrop(t *testing.T) {
	src := &fakeMarket{snaps: map[float64]market.Snapshot{
		geo.DefaultLat: snapshotOf("Wheat", "Onion"),
		1:              snapshotOf("Rice"),
	}}
	d := NewMarket(src, Options{Start: geo.Default()})
	d.Submit(context.Background())
	if err := d.Select("Onion"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	finish := d.start(geo.Coordinate{Lat: 1})
	if v := d.MarketView(); v.Selected != nil || v.State.Status() != viewstate.StatusLoading {
		t.Fatalf("loading view should have no detail, got %+v", v)
	}
	finish(context.Background())

	if got := d.MarketView().Selected.Crop.Crop; got != "Rice" {
		t.Fatalf("expected first crop of new data, got %s", got)
	}
}

func TestMarketMetricTabs(t *testing.T) {
	s := snapshotOf("Wheat", "Onion")
	s.LeastVolatile = &s.CropSummaries[1]
	src := &fakeMarket{snaps: map[float64]market.Snapshot{geo.DefaultLat: s}}
	d := NewMarket(src, Options{Start: geo.Default()})
	d.Submit(context.Background())

	if err := d.SetMetricTab("volume"); !errors.Is(err, ErrUnknownTab) {
		t.Fatalf("expected ErrUnknownTab, got %v", err)
	}
	if err := d.SetMetricTab(TabVolatility); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := d.MarketView().Metrics
	if m.Tab != TabVolatility || m.Extrema[0].Crop.Crop != "Onion" || m.Extrema[1].Crop != nil {
		t.Fatalf("unexpected metrics %+v", m)
	}
}

func TestMarketEmptyCropList(t *testing.T) {
	src := &fakeMarket{snaps: map[float64]market.Snapshot{}}
	d := NewMarket(src, Options{Start: geo.Default()})
	d.Submit(context.Background())

	v := d.MarketView()
	if v.State.Status() != viewstate.StatusReady || v.Selected != nil {
		t.Fatalf("unexpected view %+v", v)
	}
	if v.LongTerm == nil || len(v.LongTerm) != 0 || v.ShortTerm == nil || len(v.ShortTerm) != 0 {
		t.Fatalf("expected empty lists, got %v %v", v.LongTerm, v.ShortTerm)
	}
}

func TestMarketErrorDiscardsPriorSnapshot(t *testing.T) {
	src := &fakeMarket{snaps: map[float64]market.Snapshot{geo.DefaultLat: snapshotOf("Wheat")}}
	d := NewMarket(src, Options{Start: geo.Default()})
	d.Submit(context.Background())

	src.mu.Lock()
	src.err = fetch.ParseError(errors.New("unexpected token"))
	src.mu.Unlock()
	d.Refresh(context.Background())

	v := d.MarketView()
	if v.State.Status() != viewstate.StatusError || v.State.Kind() != fetch.KindParse {
		t.Fatalf("unexpected state %+v", v.State)
	}
	if v.Table != nil || v.Selected != nil {
		t.Fatal("prior snapshot must not be rendered")
	}
}

func TestMarketLastResolvedWins(t *testing.T) {
	src := &fakeMarket{snaps: map[float64]market.Snapshot{1: snapshotOf("First"), 2: snapshotOf("Second")}}
	d := NewMarket(src, Options{})

	first := d.start(geo.Coordinate{Lat: 1})
	second := d.start(geo.Coordinate{Lat: 2})
	second(context.Background())
	first(context.Background())

	snap, _ := d.MarketView().State.Value()
	if snap.CropSummaries[0].Crop != "First" {
		t.Fatalf("expected the later resolution to win, got %s", snap.CropSummaries[0].Crop)
	}
}

func TestMarketStaleGuardKeepsLatest(t *testing.T) {
	src := &fakeMarket{snaps: map[float64]market.Snapshot{1: snapshotOf("First"), 2: snapshotOf("Second")}}
	d := NewMarket(src, Options{StaleGuard: true})

	first := d.start(geo.Coordinate{Lat: 1})
	second := d.start(geo.Coordinate{Lat: 2})
	second(context.Background())
	first(context.Background())

	v := d.MarketView()
	snap, _ := v.State.Value()
	if snap.CropSummaries[0].Crop != "Second" || v.SelectedCrop != "Second" {
		t.Fatalf("expected the latest cycle to win, got %+v", v)
	}
}

func TestMarketSubmitAsync(t *testing.T) {
	src := &fakeMarket{
		snaps: map[float64]market.Snapshot{3: snapshotOf("Wheat")},
		gate:  make(chan struct{}),
	}
	d := NewMarket(src, Options{})
	d.SetInput(geo.Coordinate{Lat: 3, Lon: 4})

	ctx, cancel := context.WithCancel(context.Background())
	d.SubmitAsync(ctx)
	cancel()

	v := d.MarketView()
	if v.State.Status() != viewstate.StatusLoading || v.Input.Active != (geo.Coordinate{Lat: 3, Lon: 4}) {
		t.Fatalf("expected loading with committed input, got %+v", v)
	}

	close(src.gate)
	d.Wait()
	if d.MarketView().State.Status() != viewstate.StatusReady {
		t.Fatal("background cycle should resolve despite the cancelled request context")
	}
}

func TestMarketClearedSelectionIgnoresUnnamedCrop(t *testing.T) {
	src := &fakeMarket{snaps: map[float64]market.Snapshot{geo.DefaultLat: snapshotOf("Wheat", "")}}
	d := NewMarket(src, Options{Start: geo.Default()})
	d.Submit(context.Background())

	d.ClearSelection()
	if v := d.MarketView(); v.Selected != nil || v.SelectedCrop != "" {
		t.Fatalf("expected no detail after clearing, got %+v", v.Selected)
	}
}
