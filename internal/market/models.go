package market

import (
	"context"

	"github.com/i474232898/crop-dashboard/internal/geo"
)

// CropSummary is one crop's price history and forecast as emitted by the
// market service. The JSON keys are the service's human-readable labels.
type CropSummary struct {
	Crop string `json:"Crop"`

	CurrentPrice float64 `json:"Current Price"`
	AvgPrice     float64 `json:"Avg Price"`
	MinPrice     float64 `json:"Min Price"`
	MaxPrice     float64 `json:"Max Price"`
	Volatility   float64 `json:"Price Volatility (%)"`

	SowingMonth    string  `json:"Sowing Month"`
	HarvestMonth   string  `json:"Harvest Month"`
	GrowthDuration float64 `json:"Growth Duration (Months)"`

	LastYearAvgPrice float64 `json:"Last Year Avg Price"`
	YoYChange        float64 `json:"YoY Change (%)"`

	ForecastNextMonth float64 `json:"Forecasted Price (Next Month)"`
	Forecast6Months   float64 `json:"Forecasted Price (6 Months)"`
	Forecast1Year     float64 `json:"Forecasted Price (1 Year)"`

	ShortTermTrend float64 `json:"Short Term Trend (%)"`
	MidTermTrend   float64 `json:"Mid Term Trend (%)"`
	LongTermTrend  float64 `json:"Long Term Trend (%)"`
}

// Snapshot is the full response of the market service.
type Snapshot struct {
	CropSummaries  []CropSummary `json:"crop_summaries"`
	OverallSummary string        `json:"overall_summary"`
	CropAnalysis   []string      `json:"crop_analysis"`
	Recommendation []string      `json:"recommendation"`

	BestPrice     *CropSummary `json:"best_price,omitempty"`
	WorstPrice    *CropSummary `json:"worst_price,omitempty"`
	BestTrend     *CropSummary `json:"best_trend,omitempty"`
	WorstTrend    *CropSummary `json:"worst_trend,omitempty"`
	LeastVolatile *CropSummary `json:"least_volatile,omitempty"`
	MostVolatile  *CropSummary `json:"most_volatile,omitempty"`

	// Optional keyed variants of Recommendation and CropAnalysis. When present
	// they take priority over substring lookup.
	RecommendationsByCrop map[string]string `json:"recommendations_by_crop,omitempty"`
	AnalysisByCrop        map[string]string `json:"analysis_by_crop,omitempty"`
}

// Find returns the crop named name, if present.
func (s Snapshot) Find(name string) (CropSummary, bool) {
	for _, c := range s.CropSummaries {
		if c.Crop == name {
			return c, true
		}
	}
	return CropSummary{}, false
}

// Source abstracts the market backend.
type Source interface {
	Fetch(ctx context.Context, coord geo.Coordinate) (Snapshot, error)
}
