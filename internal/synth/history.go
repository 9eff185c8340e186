package synth

import (
	"math/rand"
	"time"

	"chainlens/internal/entity"
)

// maxDailyDrift caps the per-step multiplicative wobble at 5%.
const maxDailyDrift = 0.05

// MonthlyHistory fabricates a month-granularity series that drifts smoothly
// toward currentValue. The last point always equals currentValue exactly so
// a chart stitched to a live spot price shows no discontinuity.
func MonthlyHistory(currentValue float64, months int, now time.Time) []entity.HistoryPoint {
	if months <= 0 {
		months = 6
	}
	values := driftToward(currentValue, months, 0.12)

	points := make([]entity.HistoryPoint, months)
	for i := 0; i < months; i++ {
		m := now.AddDate(0, i-(months-1), 0)
		points[i] = entity.HistoryPoint{
			Label: m.Format("Jan"),
			Value: values[i],
		}
	}
	return points
}

// DailyHistory fabricates a day-granularity series ending exactly at
// currentValue, one point per UTC day.
func DailyHistory(currentValue float64, days int, now time.Time) []entity.HistoryPoint {
	if days <= 0 {
		days = 30
	}
	values := driftToward(currentValue, days, maxDailyDrift)

	points := make([]entity.HistoryPoint, days)
	for i := 0; i < days; i++ {
		d := now.AddDate(0, 0, i-(days-1))
		day := d.UTC().Truncate(24 * time.Hour)
		points[i] = entity.HistoryPoint{
			Label:     day.Format("Jan 2"),
			Timestamp: day.Unix(),
			Value:     values[i],
		}
	}
	return points
}

// driftToward walks backwards from endValue applying a bounded multiplicative
// step per sample, then returns the series forward-ordered with the final
// element exactly endValue.
func driftToward(endValue float64, n int, spread float64) []float64 {
	values := make([]float64, n)
	values[n-1] = endValue
	for i := n - 2; i >= 0; i-- {
		step := 1 + (rand.Float64()*2-1)*spread
		values[i] = values[i+1] * step
		if values[i] < 0 {
			values[i] = 0
		}
	}
	return values
}
