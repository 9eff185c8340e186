package normalize

import (
	"testing"
	"time"
)

func msPair(t time.Time, v float64) [2]float64 {
	return [2]float64{float64(t.UnixMilli()), v}
}

func TestMonthlySeries_PicksObservationNearest15th(t *testing.T) {
	jan2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	jan14 := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	jan30 := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)

	series := MonthlySeries([][2]float64{
		msPair(jan2, 100),
		msPair(jan14, 200),
		msPair(jan30, 300),
	}, 6)

	if len(series) != 1 {
		t.Fatalf("expected 1 month, got %d", len(series))
	}
	if series[0].Value != 200 {
		t.Fatalf("expected the Jan 14 sample (nearest the 15th), got %f", series[0].Value)
	}
	if series[0].Label != "Jan" {
		t.Fatalf("unexpected label: %q", series[0].Label)
	}
}

func TestMonthlySeries_ChronologicalAndCapped(t *testing.T) {
	var pairs [][2]float64
	for m := 1; m <= 9; m++ {
		pairs = append(pairs, msPair(time.Date(2024, time.Month(m), 15, 0, 0, 0, 0, time.UTC), float64(m)))
	}
	series := MonthlySeries(pairs, 6)
	if len(series) != 6 {
		t.Fatalf("expected 6 months, got %d", len(series))
	}
	// Capped to the most recent window: Apr..Sep.
	if series[0].Value != 4 || series[5].Value != 9 {
		t.Fatalf("expected months 4..9, got first=%f last=%f", series[0].Value, series[5].Value)
	}
	for i := 1; i < len(series); i++ {
		if series[i].Value <= series[i-1].Value {
			t.Fatalf("series not chronological at index %d", i)
		}
	}
}

func TestDailySeries_AveragesWithinDay(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	series := DailySeries([][2]float64{
		msPair(day.Add(1*time.Hour), 10),
		msPair(day.Add(13*time.Hour), 30),
		msPair(day.AddDate(0, 0, 1), 50),
	})
	if len(series) != 2 {
		t.Fatalf("expected 2 days, got %d", len(series))
	}
	if series[0].Value != 20 {
		t.Fatalf("expected day average 20, got %f", series[0].Value)
	}
	if series[1].Value != 50 {
		t.Fatalf("expected second day 50, got %f", series[1].Value)
	}
	if series[0].Timestamp >= series[1].Timestamp {
		t.Fatal("series not chronological")
	}
}
