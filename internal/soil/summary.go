package soil

import (
	"fmt"
	"strings"

	"github.com/i474232898/crop-dashboard/internal/chart"
)

// Level is a coarse qualitative rating shown next to the charts.
type Level string

const (
	LevelUnknown  Level = "unknown"
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelPoor     Level = "poor"
	LevelGood     Level = "good"
	LevelAdequate Level = "adequate"
)

// Summary is the textual reading of a snapshot, one sentence group per
// section of the soil analysis panel.
type Summary struct {
	WaterErosionLevel Level `json:"waterErosionLevel"`
	WindErosionLevel  Level `json:"windErosionLevel"`
	SaltAffectedLevel Level `json:"saltAffectedLevel"`
	VegetationHealth  Level `json:"vegetationHealth"`
	MoistureStatus    Level `json:"moistureStatus"`

	Soil        string `json:"soil"`
	Climate     string `json:"climate"`
	Risk        string `json:"risk"`
	Cultivation string `json:"cultivation"`
	Vegetation  string `json:"vegetation"`
	Moisture    string `json:"moisture"`
}

// Summarize rates each risk, vegetation and moisture, and renders the
// summary sentences. Missing values print as "unknown".
func Summarize(s Snapshot) Summary {
	water := riskLevel(s.WaterErosion)
	wind := riskLevel(s.WindErosion)
	salt := riskLevel(s.SaltAffected)
	veg := vegetationLevel(s.FilteredNDVI)
	moist := moistureLevel(s.RootMoisture, s.UpperMoisture)

	risk := strings.Join([]string{
		riskSentence("Water erosion risk", water, s.WaterErosion),
		riskSentence("Wind erosion risk", wind, s.WindErosion),
		riskSentence("Salt affected level", salt, s.SaltAffected),
	}, " ")

	return Summary{
		WaterErosionLevel: water,
		WindErosionLevel:  wind,
		SaltAffectedLevel: salt,
		VegetationHealth:  veg,
		MoistureStatus:    moist,

		Soil: fmt.Sprintf("%s soil with depth %s. The organic carbon density is %s and inorganic carbon density is %s.",
			text(s.SoilType), text(s.SoilDepth),
			value(s.OrganicCarbonDensity, " kg/m³"), value(s.InorganicCarbonDensity, " kg/m³")),
		Climate: fmt.Sprintf("Average temperature of %s with %s humidity and %s rainfall expected in the forecast period.",
			value(s.AvgTemperature, "°C"), value(s.AvgHumidity, "%"), value(s.AvgRainfall, "mm")),
		Risk: risk,
		Cultivation: fmt.Sprintf("The area has %s net sown area with %s Kharif crops, %s Rabi crops, and %s fallow land.",
			value(s.NetSownArea, "%"), value(s.Kharif, "%"), value(s.Rabi, "%"), value(s.Fallow, "%")),
		Vegetation: fmt.Sprintf("Based on NDVI values (Local: %s, Global: %s, Filtered: %s) and vegetation fraction of %s, the overall vegetation health is %s.",
			value(s.LocalNDVI, ""), value(s.GlobalNDVI, ""), value(s.FilteredNDVI, ""),
			value(s.VegetationFraction, "%"), veg),
		Moisture: fmt.Sprintf("Root level surface moisture (%s) and upper level surface moisture (%s) indicate %s soil moisture content.",
			percent(s.RootMoisture), percent(s.UpperMoisture), moist),
	}
}

func riskLevel(v *float64) Level {
	switch {
	case v == nil:
		return LevelUnknown
	case *v > 75:
		return LevelHigh
	case *v > 50:
		return LevelModerate
	default:
		return LevelLow
	}
}

func riskSentence(label string, l Level, v *float64) string {
	if v == nil {
		return label + " is unknown."
	}
	return fmt.Sprintf("%s is %s (%s).", label, l, value(v, "%"))
}

func vegetationLevel(v *float64) Level {
	switch {
	case v == nil:
		return LevelUnknown
	case *v > 70:
		return LevelGood
	case *v > 50:
		return LevelModerate
	default:
		return LevelPoor
	}
}

func moistureLevel(root, upper *float64) Level {
	if root == nil || upper == nil {
		return LevelUnknown
	}
	if *root+*upper > 0.3 {
		return LevelAdequate
	}
	return LevelLow
}

func text(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func value(v *float64, unit string) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%g%s", *v, unit)
}

// percent renders a 0-1 fraction as a percentage.
func percent(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return value(chart.Float(chart.RoundTo2(*v*moistureScale)), "%")
}
