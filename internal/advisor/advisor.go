// Package advisor produces crop recommendations for a soil snapshot, either
// from a fixed placeholder or from a generative text API.
package advisor

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/i474232898/crop-dashboard/internal/common"
	"github.com/i474232898/crop-dashboard/internal/soil"
)

// Suitability is a coarse rating attached to a recommended crop.
type Suitability string

const (
	High   Suitability = "High"
	Medium Suitability = "Medium"
	Low    Suitability = "Low"
)

// ParseSuitability normalises free text such as "high" or "Moderately
// suitable". Anything unrecognised is Low.
func ParseSuitability(s string) Suitability {
	switch {
	case common.HasAnyFold(s, "high", "excellent"):
		return High
	case common.HasAnyFold(s, "medium", "moderate"):
		return Medium
	default:
		return Low
	}
}

func (s *Suitability) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ParseSuitability(raw)
	return nil
}

// Crop is one recommended crop.
type Crop struct {
	Name          string      `json:"name"`
	Suitability   Suitability `json:"suitability"`
	Reason        string      `json:"reason"`
	GrowingSeason string      `json:"growingSeason"`
}

// Text is free text that the model may return either as a string or as a
// list of strings.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*t = Text(strings.Join(list, "\n"))
	return nil
}

// Advice is the structured recommendation shown next to the soil charts.
type Advice struct {
	RecommendedCrops       []Crop   `json:"recommendedCrops"`
	FarmingPractices       []string `json:"farmingPractices,omitempty"`
	SoilHealthImprovements []string `json:"soilHealthImprovements,omitempty"`
	RiskFactors            []string `json:"riskFactors,omitempty"`
	Insights               Text     `json:"insights,omitempty"`
}

// Advisor turns a soil snapshot into Advice.
type Advisor interface {
	Recommend(ctx context.Context, snap soil.Snapshot) (Advice, error)
}
