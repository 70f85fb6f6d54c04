package market

import "testing"

func TestLookupFromLegacyLists(t *testing.T) {
	s := Snapshot{
		CropSummaries: []CropSummary{{Crop: "Wheat"}, {Crop: "Maize"}},
		Recommendation: []string{
			"Maize prices are flat.",
			"Wheat looks promising.",
			"Wheat again.",
		},
		CropAnalysis: []string{"Wheat mentioned without marker", "CROP ANALYSIS: Wheat\nDetails."},
	}
	l := NewLookup(s)

	if got := l.Recommendation("Wheat"); got != "Wheat looks promising." {
		t.Fatalf("unexpected recommendation %q", got)
	}
	if got := l.Analysis("Wheat"); got != "CROP ANALYSIS: Wheat\nDetails." {
		t.Fatalf("unexpected analysis %q", got)
	}
	if got := l.Analysis("Maize"); got != NoAnalysis {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := l.Recommendation("Beans"); got != NoRecommendation {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestLookupPrefersKeyedMaps(t *testing.T) {
	s := Snapshot{
		CropSummaries:         []CropSummary{{Crop: "Rice"}},
		Recommendation:        []string{"Price of Rice will rise."},
		RecommendationsByCrop: map[string]string{"Rice": "Plant rice early."},
		AnalysisByCrop:        map[string]string{"Rice": "Rice analysis."},
	}
	l := NewLookup(s)
	if got := l.Recommendation("Rice"); got != "Plant rice early." {
		t.Fatalf("unexpected %q", got)
	}
	if got := l.Analysis("Rice"); got != "Rice analysis." {
		t.Fatalf("unexpected %q", got)
	}
}

func TestLookupEmptySnapshot(t *testing.T) {
	l := NewLookup(Snapshot{})
	if l.Recommendation("Wheat") != NoRecommendation || l.Analysis("Wheat") != NoAnalysis {
		t.Fatal("expected fallbacks")
	}
}
