package advisor

import (
	"fmt"
	"strings"

	"github.com/i474232898/crop-dashboard/internal/soil"
)

type promptField struct {
	label string
	value *float64
	unit  string
}

// BuildPrompt renders every soil field into the recommendation prompt and
// asks for a reply containing a single JSON object.
func BuildPrompt(s soil.Snapshot) string {
	var b strings.Builder

	b.WriteString("You are an agricultural expert. Based on the following soil and environmental data ")
	b.WriteString("for a location in India, recommend suitable crops and farming practices.\n\n")
	b.WriteString("SOIL DATA:\n")
	fmt.Fprintf(&b, "- Soil Type: %s\n", textOrUnknown(s.SoilType))
	fmt.Fprintf(&b, "- Soil Depth: %s\n", textOrUnknown(s.SoilDepth))

	sections := []struct {
		title  string
		fields []promptField
	}{
		{"", []promptField{
			{"Organic Carbon Density", s.OrganicCarbonDensity, " kg/m³"},
			{"Inorganic Carbon Density", s.InorganicCarbonDensity, " kg/m³"},
		}},
		{"SOIL RISKS", []promptField{
			{"Water Erosion", s.WaterErosion, "%"},
			{"Wind Erosion", s.WindErosion, "%"},
			{"Water Logging", s.WaterLogging, "%"},
			{"Salt Affected", s.SaltAffected, "%"},
		}},
		{"LAND USE", []promptField{
			{"Kharif", s.Kharif, "%"},
			{"Rabi", s.Rabi, "%"},
			{"Fallow", s.Fallow, "%"},
			{"Net Sown Area", s.NetSownArea, "%"},
		}},
		{"MOISTURE & VEGETATION", []promptField{
			{"Root Level Surface Moisture", s.RootMoisture, ""},
			{"Upper Level Surface Moisture", s.UpperMoisture, ""},
			{"Surface Runoff", s.SurfaceRunoff, ""},
			{"Evapotranspiration", s.Evapotranspiration, ""},
			{"Vegetation Fraction", s.VegetationFraction, ""},
			{"Filtered NDVI", s.FilteredNDVI, ""},
			{"Local NDVI", s.LocalNDVI, ""},
			{"Global NDVI", s.GlobalNDVI, ""},
		}},
		{"CLIMATE", []promptField{
			{"Average Temperature", s.AvgTemperature, "°C"},
			{"Average Humidity", s.AvgHumidity, "%"},
			{"Average Rainfall", s.AvgRainfall, " mm"},
		}},
	}

	for _, sec := range sections {
		if sec.title != "" {
			fmt.Fprintf(&b, "\n%s:\n", sec.title)
		}
		for _, f := range sec.fields {
			fmt.Fprintf(&b, "- %s: %s\n", f.label, numberOrUnknown(f.value, f.unit))
		}
	}

	b.WriteString(`
Respond with a JSON object of this exact shape and nothing else:
{
  "recommendedCrops": [
    {"name": "...", "suitability": "High|Medium|Low", "reason": "...", "growingSeason": "..."}
  ],
  "farmingPractices": ["..."],
  "soilHealthImprovements": ["..."],
  "riskFactors": ["..."],
  "insights": "..."
}
`)
	return b.String()
}

func textOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func numberOrUnknown(v *float64, unit string) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%g%s", *v, unit)
}
