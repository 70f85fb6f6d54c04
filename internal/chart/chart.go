// Package chart holds the render-ready shapes shared by the dashboards.
package chart

import "math"

// Default color palette for chart series.
var defaultColors = []string{
	"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#8884d8",
	"#82ca9d", "#ffc658", "#36A2EB", "#f87171", "#4ade80",
}

// Chart types understood by the frontend.
const (
	TypeBar   = "bar"
	TypePie   = "pie"
	TypeRadar = "radar"
)

// Point is a single {name, value} row. A nil Value means the upstream field
// was missing and is rendered as a gap.
type Point struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
	Unit  string   `json:"unit,omitempty"`
}

// RadarPoint is a {subject, value, fullMark} row for radar charts.
type RadarPoint struct {
	Subject  string   `json:"subject"`
	Value    *float64 `json:"value"`
	FullMark float64  `json:"fullMark"`
}

// Series is one named data series.
type Series struct {
	Name  string  `json:"name"`
	Data  []Point `json:"data"`
	Color string  `json:"color,omitempty"`
}

// Config describes one chart.
type Config struct {
	ChartType  string       `json:"chartType"`
	Title      string       `json:"title"`
	XAxis      string       `json:"xAxis,omitempty"`
	YAxis      string       `json:"yAxis,omitempty"`
	Series     []Series     `json:"series,omitempty"`
	Radar      []RadarPoint `json:"radar,omitempty"`
	Colors     []string     `json:"colors,omitempty"`
	ShowLegend bool         `json:"showLegend"`
	ShowGrid   bool         `json:"showGrid"`
}

// Single builds a one-series chart of the given type.
func Single(chartType, title string, points []Point) *Config {
	cfg := &Config{
		ChartType:  chartType,
		Title:      title,
		ShowLegend: chartType == TypePie,
		ShowGrid:   chartType != TypePie,
		Series:     []Series{{Name: title, Data: points}},
	}
	if chartType == TypePie {
		// One colour per slice.
		cfg.Colors = assignColors(len(points))
	} else {
		cfg.Colors = assignColors(1)
		cfg.Series[0].Color = cfg.Colors[0]
	}
	return cfg
}

// Multi builds a grouped bar chart from several series sharing the same names.
func Multi(title, xAxis, yAxis string, series []Series) *Config {
	colors := assignColors(len(series))
	for i := range series {
		series[i].Color = colors[i]
	}
	return &Config{
		ChartType:  TypeBar,
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     series,
		Colors:     colors,
		ShowLegend: true,
		ShowGrid:   true,
	}
}

// RadarChart builds a radar chart.
func RadarChart(title string, points []RadarPoint) *Config {
	return &Config{
		ChartType:  TypeRadar,
		Title:      title,
		Radar:      points,
		Colors:     assignColors(1),
		ShowLegend: true,
	}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Copy returns a fresh pointer holding *v, preserving nil.
func Copy(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(*v)
}

// Scale multiplies *v by k, preserving nil.
func Scale(v *float64, k float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(*v * k)
}

// RoundTo2 rounds to two decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
