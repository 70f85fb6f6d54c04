package soil

import (
	"strings"

	"github.com/i474232898/crop-dashboard/internal/chart"
)

// Moisture fractions are reported 0-1 and displayed as percentages.
// Row values are copies of the snapshot fields.
const moistureScale = 100

// CultivationRows maps land-use percentages for the cultivation pie chart.
func CultivationRows(s Snapshot) []chart.Point {
	return []chart.Point{
		{Name: "Kharif", Value: chart.Copy(s.Kharif), Unit: "%"},
		{Name: "Rabi", Value: chart.Copy(s.Rabi), Unit: "%"},
		{Name: "Fallow", Value: chart.Copy(s.Fallow), Unit: "%"},
		{Name: "Net Sown Area", Value: chart.Copy(s.NetSownArea), Unit: "%"},
	}
}

// NDVIRows maps vegetation indices for the NDVI bar chart.
func NDVIRows(s Snapshot) []chart.Point {
	return []chart.Point{
		{Name: "Local NDVI", Value: chart.Copy(s.LocalNDVI)},
		{Name: "Global NDVI", Value: chart.Copy(s.GlobalNDVI)},
		{Name: "Filtered NDVI", Value: chart.Copy(s.FilteredNDVI)},
		{Name: "Vegetation Fraction", Value: chart.Copy(s.VegetationFraction)},
	}
}

// RiskRows maps soil risk percentages for the radar chart.
func RiskRows(s Snapshot) []chart.RadarPoint {
	return []chart.RadarPoint{
		{Subject: "Water Erosion", Value: chart.Copy(s.WaterErosion), FullMark: 100},
		{Subject: "Wind Erosion", Value: chart.Copy(s.WindErosion), FullMark: 100},
		{Subject: "Water Logging", Value: chart.Copy(s.WaterLogging), FullMark: 100},
		{Subject: "Salt Affected", Value: chart.Copy(s.SaltAffected), FullMark: 100},
	}
}

// MoistureRows maps moisture fractions to percentages. Evapotranspiration is
// already in its display unit and is copied unscaled.
func MoistureRows(s Snapshot) []chart.Point {
	return []chart.Point{
		{Name: "Root Moisture", Value: chart.Scale(s.RootMoisture, moistureScale), Unit: "%"},
		{Name: "Upper Moisture", Value: chart.Scale(s.UpperMoisture, moistureScale), Unit: "%"},
		{Name: "Surface Runoff", Value: chart.Scale(s.SurfaceRunoff, moistureScale), Unit: "%"},
		{Name: "Evapotranspiration", Value: chart.Copy(s.Evapotranspiration)},
	}
}

// ClimateRows maps forecast averages for the climate bar chart.
func ClimateRows(s Snapshot) []chart.Point {
	return []chart.Point{
		{Name: "Temperature", Value: chart.Copy(s.AvgTemperature), Unit: "°C"},
		{Name: "Humidity", Value: chart.Copy(s.AvgHumidity), Unit: "%"},
		{Name: "Rainfall", Value: chart.Copy(s.AvgRainfall), Unit: "mm"},
	}
}

// Charts is every chart the soil dashboard renders.
type Charts struct {
	Climate     *chart.Config `json:"climate"`
	Moisture    *chart.Config `json:"moisture"`
	Cultivation *chart.Config `json:"cultivation"`
	NDVI        *chart.Config `json:"ndvi"`
	Risk        *chart.Config `json:"risk"`
}

// BuildCharts derives all chart configs from s.
func BuildCharts(s Snapshot) Charts {
	return Charts{
		Climate:     chart.Single(chart.TypeBar, "Climate", ClimateRows(s)),
		Moisture:    chart.Single(chart.TypeBar, "Vegetation & Moisture", MoistureRows(s)),
		Cultivation: chart.Single(chart.TypePie, "Crop Cultivation", CultivationRows(s)),
		NDVI:        chart.Single(chart.TypeBar, "NDVI & Vegetation Metrics", NDVIRows(s)),
		Risk:        chart.RadarChart("Soil Risk Analysis", RiskRows(s)),
	}
}

// WeatherGraphURL resolves the forecast graph asset served by the soil service.
// It returns "" when the snapshot carries no path.
func WeatherGraphURL(base string, s Snapshot) string {
	if s.WeatherGraphPath == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(s.WeatherGraphPath, "/")
}
