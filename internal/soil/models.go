package soil

import (
	"context"

	"github.com/i474232898/crop-dashboard/internal/geo"
)

// Snapshot is the flat soil/environment record returned by the soil service.
// Numeric metrics are pointers so that fields missing upstream stay null.
type Snapshot struct {
	SoilType  string `json:"soil_type,omitempty"`
	SoilDepth string `json:"soil_depth,omitempty"`

	OrganicCarbonDensity   *float64 `json:"organic_carbon_density,omitempty"`   // kg/m³
	InorganicCarbonDensity *float64 `json:"inorganic_carbon_density,omitempty"` // kg/m³

	// Risk percentages, 0-100.
	SaltAffected *float64 `json:"salt_affected,omitempty"`
	WaterErosion *float64 `json:"water_erosion,omitempty"`
	WindErosion  *float64 `json:"wind_erosion,omitempty"`
	WaterLogging *float64 `json:"water_logging,omitempty"`

	// Land-use percentages, 0-100.
	Fallow      *float64 `json:"fallow,omitempty"`
	Kharif      *float64 `json:"kharif,omitempty"`
	Rabi        *float64 `json:"rabi,omitempty"`
	NetSownArea *float64 `json:"net_sown_area,omitempty"`

	// Moisture fractions, 0-1.
	RootMoisture  *float64 `json:"root_level_surface_moisture,omitempty"`
	UpperMoisture *float64 `json:"upper_level_surface_moisture,omitempty"`
	SurfaceRunoff *float64 `json:"surface_runoff,omitempty"`

	Evapotranspiration *float64 `json:"evapotranspiration,omitempty"`

	VegetationFraction *float64 `json:"vegetation_fraction,omitempty"`
	FilteredNDVI       *float64 `json:"filtered_ndvi,omitempty"`
	LocalNDVI          *float64 `json:"local_ndvi,omitempty"`
	GlobalNDVI         *float64 `json:"global_ndvi,omitempty"`

	AvgTemperature *float64 `json:"avg_temperature,omitempty"` // °C
	AvgHumidity    *float64 `json:"avg_humidity,omitempty"`    // %
	AvgRainfall    *float64 `json:"avg_rainfall,omitempty"`    // mm

	WeatherGraphPath string `json:"weather_graph_path,omitempty"`
}

// Source abstracts the soil backend.
type Source interface {
	Fetch(ctx context.Context, coord geo.Coordinate) (Snapshot, error)
}
