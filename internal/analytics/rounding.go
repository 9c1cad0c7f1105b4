package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"likecli/pkg/contracts/domain"
)

// Round2 rounds x to two decimals, ties to even.
// Matches numpy/pandas round(2) for values that are exact at the third decimal.
func Round2(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}

func round2Percent(p domain.Percent) domain.Percent {
	if !p.Valid {
		return p
	}
	return domain.Pct(Round2(p.Value))
}

// meanOf returns the mean of the valid values, or a missing Percent if there are none
func meanOf(values []domain.Percent) domain.Percent {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Valid {
			valid = append(valid, v.Value)
		}
	}
	if len(valid) == 0 {
		return domain.MissingPercent
	}
	return domain.Pct(stat.Mean(valid, nil))
}
