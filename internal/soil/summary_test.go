package soil

import (
	"testing"

	"github.com/i474232898/crop-dashboard/internal/chart"
)

func TestRiskLevelThresholds(t *testing.T) {
	tests := []struct {
		in   *float64
		want Level
	}{
		{nil, LevelUnknown},
		{chart.Float(0), LevelLow},
		{chart.Float(50), LevelLow},
		{chart.Float(50.1), LevelModerate},
		{chart.Float(75), LevelModerate},
		{chart.Float(75.1), LevelHigh},
		{chart.Float(100), LevelHigh},
	}

	ratings := []struct {
		name  string
		set   func(*Snapshot, *float64)
		level func(Summary) Level
	}{
		{"water", func(s *Snapshot, v *float64) { s.WaterErosion = v }, func(s Summary) Level { return s.WaterErosionLevel }},
		{"wind", func(s *Snapshot, v *float64) { s.WindErosion = v }, func(s Summary) Level { return s.WindErosionLevel }},
		{"salt", func(s *Snapshot, v *float64) { s.SaltAffected = v }, func(s Summary) Level { return s.SaltAffectedLevel }},
	}

	for _, r := range ratings {
		for _, tt := range tests {
			var snap Snapshot
			r.set(&snap, tt.in)
			if got := r.level(Summarize(snap)); got != tt.want {
				t.Fatalf("%s %v: expected %s, got %s", r.name, tt.in, tt.want, got)
			}
		}
	}
}

func TestRisksAreRatedIndependently(t *testing.T) {
	got := Summarize(Snapshot{
		WaterErosion: chart.Float(10),
		WindErosion:  chart.Float(90),
		SaltAffected: chart.Float(60),
	})
	if got.WaterErosionLevel != LevelLow || got.WindErosionLevel != LevelHigh || got.SaltAffectedLevel != LevelModerate {
		t.Fatalf("unexpected levels %s/%s/%s", got.WaterErosionLevel, got.WindErosionLevel, got.SaltAffectedLevel)
	}
	want := "Water erosion risk is low (10%). Wind erosion risk is high (90%). Salt affected level is moderate (60%)."
	if got.Risk != want {
		t.Fatalf("unexpected risk text %q", got.Risk)
	}
}

func TestSummarizeVegetationAndMoisture(t *testing.T) {
	tests := []struct {
		name  string
		snap  Snapshot
		veg   Level
		moist Level
	}{
		{
			name:  "empty",
			snap:  Snapshot{},
			veg:   LevelUnknown,
			moist: LevelUnknown,
		},
		{
			name: "good and adequate",
			snap: Snapshot{
				FilteredNDVI:  chart.Float(71),
				RootMoisture:  chart.Float(0.2),
				UpperMoisture: chart.Float(0.2),
			},
			veg:   LevelGood,
			moist: LevelAdequate,
		},
		{
			name: "boundaries",
			snap: Snapshot{
				FilteredNDVI:  chart.Float(70),
				RootMoisture:  chart.Float(0.1),
				UpperMoisture: chart.Float(0.2),
			},
			veg:   LevelModerate,
			moist: LevelLow,
		},
		{
			name:  "poor",
			snap:  Snapshot{FilteredNDVI: chart.Float(50)},
			veg:   LevelPoor,
			moist: LevelUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.snap)
			if got.VegetationHealth != tt.veg || got.MoistureStatus != tt.moist {
				t.Fatalf("got %s/%s, want %s/%s", got.VegetationHealth, got.MoistureStatus, tt.veg, tt.moist)
			}
		})
	}
}

func TestSummarizeText(t *testing.T) {
	got := Summarize(Snapshot{
		SoilType:             "Clayey",
		SoilDepth:            "100-150 cm",
		OrganicCarbonDensity: chart.Float(5.5),
		AvgTemperature:       chart.Float(28.5),
		AvgHumidity:          chart.Float(70),
		AvgRainfall:          chart.Float(12),
		NetSownArea:          chart.Float(60),
		Kharif:               chart.Float(40),
		Rabi:                 chart.Float(20),
		Fallow:               chart.Float(10),
		LocalNDVI:            chart.Float(0.6),
		FilteredNDVI:         chart.Float(80),
		RootMoisture:         chart.Float(0.25),
		UpperMoisture:        chart.Float(0.1),
	})

	tests := []struct {
		got, want string
	}{
		{got.Soil, "Clayey soil with depth 100-150 cm. The organic carbon density is 5.5 kg/m³ and inorganic carbon density is unknown."},
		{got.Climate, "Average temperature of 28.5°C with 70% humidity and 12mm rainfall expected in the forecast period."},
		{got.Cultivation, "The area has 60% net sown area with 40% Kharif crops, 20% Rabi crops, and 10% fallow land."},
		{got.Vegetation, "Based on NDVI values (Local: 0.6, Global: unknown, Filtered: 80) and vegetation fraction of unknown, the overall vegetation health is good."},
		{got.Moisture, "Root level surface moisture (25%) and upper level surface moisture (10%) indicate adequate soil moisture content."},
		{got.Risk, "Water erosion risk is unknown. Wind erosion risk is unknown. Salt affected level is unknown."},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, tt.got)
		}
	}
}
