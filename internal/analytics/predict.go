package analytics

import (
	"chainlens/internal/entity"
)

// slopeFlatBand is the relative daily slope below which a trend counts as flat.
const slopeFlatBand = 0.001

// PredictPrice fits ordinary least squares over (dayIndex, price) samples and
// projects 7 and 30 days past the last observation. Negative projections are
// clamped to zero, and a strictly rising series never projects below its last
// price (a convex rally leaves the fitted line under the latest observation).
// Confidence is a step function of sample count.
func PredictPrice(daily []entity.HistoryPoint) entity.PricePrediction {
	n := len(daily)
	if n == 0 {
		return entity.PricePrediction{Confidence: entity.ConfidenceLow, Trend: entity.TrendFlat}
	}

	current := daily[n-1].Value
	if n == 1 {
		return entity.PricePrediction{
			CurrentPrice: current,
			Prediction7d: current,
			Prediction30: current,
			Confidence:   entity.ConfidenceLow,
			Trend:        entity.TrendFlat,
		}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range daily {
		x := float64(i)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	var slope, intercept float64
	if denom != 0 {
		slope = (fn*sumXY - sumX*sumY) / denom
		intercept = (sumY - slope*sumX) / fn
	} else {
		intercept = sumY / fn
	}

	lastIndex := float64(n - 1)
	at := func(offset float64) float64 {
		v := intercept + slope*(lastIndex+offset)
		if v < 0 {
			return 0
		}
		return v
	}

	p7 := at(7)
	p30 := at(30)
	if strictlyRising(daily) {
		if p7 < current {
			p7 = current
		}
		if p30 < p7 {
			p30 = p7
		}
	}

	return entity.PricePrediction{
		CurrentPrice: current,
		Prediction7d: p7,
		Prediction30: p30,
		Confidence:   confidenceFor(n),
		Trend:        trendFor(slope, current),
	}
}

func strictlyRising(daily []entity.HistoryPoint) bool {
	for i := 1; i < len(daily); i++ {
		if daily[i].Value <= daily[i-1].Value {
			return false
		}
	}
	return true
}

func confidenceFor(samples int) entity.Confidence {
	switch {
	case samples < 3:
		return entity.ConfidenceLow
	case samples < 7:
		return entity.ConfidenceMedium
	default:
		return entity.ConfidenceHigh
	}
}

func trendFor(slope, current float64) entity.Trend {
	band := slopeFlatBand
	if current > 0 {
		band = current * slopeFlatBand
	}
	switch {
	case slope > band:
		return entity.TrendUp
	case slope < -band:
		return entity.TrendDown
	default:
		return entity.TrendFlat
	}
}
