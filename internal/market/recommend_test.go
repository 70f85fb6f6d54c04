package market

import "testing"

func crops(trends ...[2]float64) []CropSummary {
	names := []string{"Wheat", "Tomato", "Rice", "Potato", "Beans", "Onion"}
	out := make([]CropSummary, len(trends))
	for i, t := range trends {
		out[i] = CropSummary{Crop: names[i], ShortTermTrend: t[0], LongTermTrend: t[1]}
	}
	return out
}

func names(cs []CropSummary) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Crop
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLongTermTopThreeDescending(t *testing.T) {
	in := crops([2]float64{0, 5}, [2]float64{0, -20}, [2]float64{0, 12}, [2]float64{0, 3}, [2]float64{0, 12})
	got := names(LongTerm(in))
	want := []string{"Rice", "Beans", "Wheat"}
	if !equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if in[0].Crop != "Wheat" || in[2].Crop != "Rice" {
		t.Fatal("input was reordered")
	}
}

func TestLongTermIncludesNegativeTrends(t *testing.T) {
	got := names(LongTerm(crops([2]float64{0, -3}, [2]float64{0, -1})))
	if !equal(got, []string{"Tomato", "Wheat"}) {
		t.Fatalf("unexpected %v", got)
	}
}

func TestShortTermFiltersAboveFive(t *testing.T) {
	in := crops([2]float64{5, 0}, [2]float64{5.1, 0}, [2]float64{20, 0}, [2]float64{-1, 0}, [2]float64{8, 0}, [2]float64{6, 0})
	got := names(ShortTerm(in))
	want := []string{"Rice", "Beans", "Onion"}
	if !equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestEmptyInputsGiveEmptyLists(t *testing.T) {
	if got := LongTerm(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
	if got := ShortTerm(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
	if got := ShortTerm(crops([2]float64{1, 0})); len(got) != 0 {
		t.Fatalf("expected no short term picks, got %v", names(got))
	}
}

func TestRankByMidTerm(t *testing.T) {
	in := []CropSummary{{Crop: "a", MidTermTrend: 1}, {Crop: "b", MidTermTrend: 3}, {Crop: "c", MidTermTrend: 2}}
	if got := names(Rank(in, MidTermTrend, 2)); !equal(got, []string{"b", "c"}) {
		t.Fatalf("unexpected %v", got)
	}
	if got := Rank(in, MidTermTrend, 10); len(got) != 3 {
		t.Fatalf("expected all crops, got %d", len(got))
	}
}
