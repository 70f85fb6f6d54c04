package market

import "sort"

// TrendField selects which forecast horizon to rank by.
type TrendField int

const (
	ShortTermTrend TrendField = iota
	MidTermTrend
	LongTermTrend
)

func (f TrendField) of(c CropSummary) float64 {
	switch f {
	case ShortTermTrend:
		return c.ShortTermTrend
	case MidTermTrend:
		return c.MidTermTrend
	default:
		return c.LongTermTrend
	}
}

// Number of crops in each recommendation list.
const topN = 3

// Short-term picks must be forecast to rise by more than this percentage.
const shortTermThreshold = 5

// Rank returns up to n crops ordered by field, highest first. Ties keep
// backend order. The input slice is not modified.
func Rank(crops []CropSummary, field TrendField, n int) []CropSummary {
	ranked := make([]CropSummary, len(crops))
	copy(ranked, crops)
	sort.SliceStable(ranked, func(i, j int) bool {
		return field.of(ranked[i]) > field.of(ranked[j])
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// LongTerm returns the top crops by one-year trend, regardless of sign.
func LongTerm(crops []CropSummary) []CropSummary {
	return Rank(crops, LongTermTrend, topN)
}

// ShortTerm returns the top crops whose one-month trend exceeds 5%.
func ShortTerm(crops []CropSummary) []CropSummary {
	rising := make([]CropSummary, 0, len(crops))
	for _, c := range crops {
		if c.ShortTermTrend > shortTermThreshold {
			rising = append(rising, c)
		}
	}
	return Rank(rising, ShortTermTrend, topN)
}
