package advisor

import (
	"context"
	"time"

	"github.com/i474232898/crop-dashboard/internal/soil"
)

// Static returns the same placeholder advice for every snapshot.
type Static struct {
	// Delay simulates a slow upstream. Zero returns immediately.
	Delay time.Duration
}

func (s Static) Recommend(ctx context.Context, _ soil.Snapshot) (Advice, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Advice{}, ctx.Err()
		case <-timer.C:
		}
	}
	return placeholderAdvice(), nil
}

func placeholderAdvice() Advice {
	return Advice{
		RecommendedCrops: []Crop{
			{
				Name:          "Sorghum (Jowar)",
				Suitability:   High,
				Reason:        "Thrives in loamy soil with moderate water requirements. Good for regions with water erosion risk.",
				GrowingSeason: "Kharif",
			},
			{
				Name:          "Pearl Millet (Bajra)",
				Suitability:   High,
				Reason:        "Drought resistant and suited for regions with moderate rainfall and temperatures above 30°C.",
				GrowingSeason: "Kharif",
			},
			{
				Name:          "Chickpea (Gram)",
				Suitability:   Medium,
				Reason:        "Works well in loamy soil with moderate depth. Helps in nitrogen fixation.",
				GrowingSeason: "Rabi",
			},
			{
				Name:          "Pigeon Pea (Tur Dal)",
				Suitability:   High,
				Reason:        "Thrives in loamy soil with moderate water needs and tolerates high temperatures.",
				GrowingSeason: "Kharif",
			},
			{
				Name:          "Cotton",
				Suitability:   Medium,
				Reason:        "Suitable for loamy soil but requires good drainage. Consider the water erosion risk.",
				GrowingSeason: "Kharif to Rabi",
			},
		},
		SoilHealthImprovements: []string{
			"Consider crop rotation to improve soil organic matter",
			"Implement contour farming to reduce water erosion",
			"Add organic mulch to improve water retention",
			"Use cover crops during fallow periods",
		},
	}
}
