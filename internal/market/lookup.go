package market

import "strings"

const (
	NoRecommendation = "No specific recommendation available."
	NoAnalysis       = "No detailed analysis available."

	analysisMarker = "CROP ANALYSIS: "
)

// Lookup resolves per-crop recommendation and analysis text.
type Lookup struct {
	recommendations map[string]string
	analysis        map[string]string
}

// NewLookup indexes s by crop name. Keyed maps from the service win; crops
// missing from them are resolved against the free-text lists, first match
// in list order.
func NewLookup(s Snapshot) Lookup {
	l := Lookup{
		recommendations: make(map[string]string, len(s.CropSummaries)),
		analysis:        make(map[string]string, len(s.CropSummaries)),
	}
	for _, c := range s.CropSummaries {
		name := c.Crop
		if text, ok := s.RecommendationsByCrop[name]; ok {
			l.recommendations[name] = text
		} else if text, ok := firstContaining(s.Recommendation, name); ok {
			l.recommendations[name] = text
		}
		if text, ok := s.AnalysisByCrop[name]; ok {
			l.analysis[name] = text
		} else if text, ok := firstContaining(s.CropAnalysis, analysisMarker+name); ok {
			l.analysis[name] = text
		}
	}
	return l
}

// Recommendation returns the market recommendation text for crop.
func (l Lookup) Recommendation(crop string) string {
	if text, ok := l.recommendations[crop]; ok {
		return text
	}
	return NoRecommendation
}

// Analysis returns the detailed analysis text for crop.
func (l Lookup) Analysis(crop string) string {
	if text, ok := l.analysis[crop]; ok {
		return text
	}
	return NoAnalysis
}

func firstContaining(texts []string, needle string) (string, bool) {
	if needle == "" {
		return "", false
	}
	for _, t := range texts {
		if strings.Contains(t, needle) {
			return t, true
		}
	}
	return "", false
}
