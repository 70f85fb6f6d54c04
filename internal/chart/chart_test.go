package chart

import "testing"

func TestScalePreservesNil(t *testing.T) {
	if Scale(nil, 100) != nil {
		t.Fatal("expected nil")
	}
	if got := *Scale(Float(0.25), 100); got != 25 {
		t.Fatalf("expected 25, got %v", got)
	}
}

func TestSinglePieColoursEverySlice(t *testing.T) {
	cfg := Single(TypePie, "Crop Cultivation", []Point{{Name: "a"}, {Name: "b"}, {Name: "c"}})
	if len(cfg.Colors) != 3 {
		t.Fatalf("expected 3 colours, got %d", len(cfg.Colors))
	}
	if cfg.ShowGrid {
		t.Fatal("pie charts have no grid")
	}
}

func TestMultiAssignsSeriesColours(t *testing.T) {
	cfg := Multi("Trends", "Crop", "%", []Series{{Name: "short"}, {Name: "long"}})
	if cfg.Series[0].Color == "" || cfg.Series[0].Color == cfg.Series[1].Color {
		t.Fatalf("unexpected colours %+v", cfg.Series)
	}
}

func TestRoundTo2(t *testing.T) {
	if got := RoundTo2(7.000000000000001); got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
	if got := RoundTo2(-1.005); got != -1 && got != -1.01 {
		t.Fatalf("unexpected %v", got)
	}
}

func TestCopy(t *testing.T) {
	if Copy(nil) != nil {
		t.Fatal("expected nil")
	}
	v := Float(3)
	c := Copy(v)
	*c = 4
	if *v != 3 {
		t.Fatalf("copy aliases its source: %v", *v)
	}
}
