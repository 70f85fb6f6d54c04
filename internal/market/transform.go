package market

import (
	"github.com/i474232898/crop-dashboard/internal/chart"
)

// TrendIndicator maps a percentage change to a direction glyph.
func TrendIndicator(v float64) string {
	switch {
	case v > 10:
		return "↑↑"
	case v > 0:
		return "↑"
	case v > -10:
		return "↓"
	default:
		return "↓↓"
	}
}

// Advice is the canned guidance shown for a crop's one-year outlook.
type Advice struct {
	Tier    string `json:"tier"`
	Message string `json:"message"`
}

// AdviceFor classifies a long-term trend percentage.
func AdviceFor(longTermTrend float64) Advice {
	switch {
	case longTermTrend > 10:
		return Advice{Tier: "strong", Message: "Strong potential for price increase in the coming year. Consider growing this crop if suitable for your land."}
	case longTermTrend > 0:
		return Advice{Tier: "modest", Message: "Modest price growth expected. Could be a stable option."}
	case longTermTrend > -10:
		return Advice{Tier: "slight_decline", Message: "Slight price decline expected. Consider carefully."}
	default:
		return Advice{Tier: "significant_decline", Message: "Significant price decline expected. May not be economically viable unless costs are low."}
	}
}

// PriceComparisonRow compares the current price with every forecast horizon.
type PriceComparisonRow struct {
	Name              string  `json:"name"`
	CurrentPrice      float64 `json:"currentPrice"`
	ForecastNextMonth float64 `json:"forecastNextMonth"`
	Forecast6Months   float64 `json:"forecast6Months"`
	Forecast1Year     float64 `json:"forecast1Year"`
	Trend1Month       float64 `json:"trend1Month"`
	Trend6Months      float64 `json:"trend6Months"`
	Trend1Year        float64 `json:"trend1Year"`
}

// PriceComparisonRows keeps backend order.
func PriceComparisonRows(crops []CropSummary) []PriceComparisonRow {
	rows := make([]PriceComparisonRow, 0, len(crops))
	for _, c := range crops {
		rows = append(rows, PriceComparisonRow{
			Name:              c.Crop,
			CurrentPrice:      c.CurrentPrice,
			ForecastNextMonth: c.ForecastNextMonth,
			Forecast6Months:   c.Forecast6Months,
			Forecast1Year:     c.Forecast1Year,
			Trend1Month:       c.ShortTermTrend,
			Trend6Months:      c.MidTermTrend,
			Trend1Year:        c.LongTermTrend,
		})
	}
	return rows
}

// TrendRow is the per-crop percentage change for each horizon.
type TrendRow struct {
	Name      string  `json:"name"`
	ShortTerm float64 `json:"Short Term (1 Month)"`
	MidTerm   float64 `json:"Mid Term (6 Months)"`
	LongTerm  float64 `json:"Long Term (1 Year)"`
}

func TrendRows(crops []CropSummary) []TrendRow {
	rows := make([]TrendRow, 0, len(crops))
	for _, c := range crops {
		rows = append(rows, TrendRow{
			Name:      c.Crop,
			ShortTerm: c.ShortTermTrend,
			MidTerm:   c.MidTermTrend,
			LongTerm:  c.LongTermTrend,
		})
	}
	return rows
}

// VolatilityRow pairs price volatility with year-over-year change.
type VolatilityRow struct {
	Name       string  `json:"name"`
	Volatility float64 `json:"Price Volatility (%)"`
	YoYChange  float64 `json:"YoY Change (%)"`
}

func VolatilityRows(crops []CropSummary) []VolatilityRow {
	rows := make([]VolatilityRow, 0, len(crops))
	for _, c := range crops {
		rows = append(rows, VolatilityRow{
			Name:       c.Crop,
			Volatility: c.Volatility,
			YoYChange:  c.YoYChange,
		})
	}
	return rows
}

// Horizon is one forecast cell of the analysis table.
type Horizon struct {
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	Indicator string  `json:"indicator"`
	Rising    bool    `json:"rising"`
}

func horizon(price, change float64) Horizon {
	return Horizon{Price: price, Change: chart.RoundTo2(change), Indicator: TrendIndicator(change), Rising: change > 0}
}

// TableRow is one line of the crop analysis table.
type TableRow struct {
	Crop         string  `json:"crop"`
	CurrentPrice float64 `json:"currentPrice"`
	OneMonth     Horizon `json:"oneMonth"`
	SixMonths    Horizon `json:"sixMonths"`
	OneYear      Horizon `json:"oneYear"`
	Volatility   float64 `json:"volatility"`
}

// TableRows keeps backend order.
func TableRows(crops []CropSummary) []TableRow {
	rows := make([]TableRow, 0, len(crops))
	for _, c := range crops {
		rows = append(rows, TableRow{
			Crop:         c.Crop,
			CurrentPrice: c.CurrentPrice,
			OneMonth:     horizon(c.ForecastNextMonth, c.ShortTermTrend),
			SixMonths:    horizon(c.Forecast6Months, c.MidTermTrend),
			OneYear:      horizon(c.Forecast1Year, c.LongTermTrend),
			Volatility:   c.Volatility,
		})
	}
	return rows
}

// TrendChart is the grouped bar chart of short, mid and long term trends.
func TrendChart(crops []CropSummary) *chart.Config {
	short := make([]chart.Point, 0, len(crops))
	mid := make([]chart.Point, 0, len(crops))
	long := make([]chart.Point, 0, len(crops))
	for _, c := range crops {
		short = append(short, chart.Point{Name: c.Crop, Value: chart.Float(c.ShortTermTrend), Unit: "%"})
		mid = append(mid, chart.Point{Name: c.Crop, Value: chart.Float(c.MidTermTrend), Unit: "%"})
		long = append(long, chart.Point{Name: c.Crop, Value: chart.Float(c.LongTermTrend), Unit: "%"})
	}
	return chart.Multi("Price Trend Forecast (%)", "Crop", "Price Change (%)", []chart.Series{
		{Name: "Short Term (1 Month)", Data: short},
		{Name: "Mid Term (6 Months)", Data: mid},
		{Name: "Long Term (1 Year)", Data: long},
	})
}

// VolatilityChart is the grouped bar chart of volatility and YoY change.
func VolatilityChart(crops []CropSummary) *chart.Config {
	vol := make([]chart.Point, 0, len(crops))
	yoy := make([]chart.Point, 0, len(crops))
	for _, c := range crops {
		vol = append(vol, chart.Point{Name: c.Crop, Value: chart.Float(c.Volatility), Unit: "%"})
		yoy = append(yoy, chart.Point{Name: c.Crop, Value: chart.Float(c.YoYChange), Unit: "%"})
	}
	return chart.Multi("Price Volatility & Year-over-Year Change", "Crop", "%", []chart.Series{
		{Name: "Price Volatility (%)", Data: vol},
		{Name: "YoY Change (%)", Data: yoy},
	})
}

// PriceChart compares current price with the one-year forecast.
func PriceChart(crops []CropSummary) *chart.Config {
	cur := make([]chart.Point, 0, len(crops))
	fc := make([]chart.Point, 0, len(crops))
	for _, c := range crops {
		cur = append(cur, chart.Point{Name: c.Crop, Value: chart.Float(c.CurrentPrice), Unit: "₹"})
		fc = append(fc, chart.Point{Name: c.Crop, Value: chart.Float(c.Forecast1Year), Unit: "₹"})
	}
	return chart.Multi("Price Comparison", "Crop", "Price (Rs./Quintal)", []chart.Series{
		{Name: "Current Price", Data: cur},
		{Name: "Forecast (1 Year)", Data: fc},
	})
}
