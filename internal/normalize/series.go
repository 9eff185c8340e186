package normalize

import (
	"sort"
	"time"

	"chainlens/internal/entity"
)

// MonthlySeries compresses (timestampMillis, value) chart pairs into one
// point per calendar month, keeping the observation nearest the 15th as the
// representative sample. Months come out chronologically ordered and capped
// to the most recent maxMonths.
func MonthlySeries(pairs [][2]float64, maxMonths int) []entity.HistoryPoint {
	type sample struct {
		t time.Time
		v float64
	}
	best := make(map[string]sample)
	for _, p := range pairs {
		t := time.UnixMilli(int64(p[0])).UTC()
		key := t.Format("2006-01")
		cur, ok := best[key]
		if !ok || distanceFromMid(t) < distanceFromMid(cur.t) {
			best[key] = sample{t: t, v: Finite(p[1])}
		}
	}

	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if maxMonths > 0 && len(keys) > maxMonths {
		keys = keys[len(keys)-maxMonths:]
	}

	points := make([]entity.HistoryPoint, 0, len(keys))
	for _, k := range keys {
		s := best[k]
		points = append(points, entity.HistoryPoint{
			Label: s.t.Format("Jan"),
			Value: s.v,
		})
	}
	return points
}

func distanceFromMid(t time.Time) int {
	d := t.Day() - 15
	if d < 0 {
		return -d
	}
	return d
}

// DailySeries compresses chart pairs into one averaged point per UTC day,
// chronologically ordered.
func DailySeries(pairs [][2]float64) []entity.HistoryPoint {
	type bucket struct {
		sum   float64
		count int
	}
	byDay := make(map[int64]*bucket)
	for _, p := range pairs {
		day := int64(p[0]) / 1000 / 86400
		b, ok := byDay[day]
		if !ok {
			b = &bucket{}
			byDay[day] = b
		}
		b.sum += Finite(p[1])
		b.count++
	}

	days := make([]int64, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	points := make([]entity.HistoryPoint, 0, len(days))
	for _, day := range days {
		b := byDay[day]
		ts := day * 86400
		points = append(points, entity.HistoryPoint{
			Label:     time.Unix(ts, 0).UTC().Format("Jan 2"),
			Timestamp: ts,
			Value:     Finite(b.sum / float64(b.count)),
		})
	}
	return points
}
