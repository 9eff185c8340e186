package analytics

import (
	"testing"

	"chainlens/internal/entity"
)

func series(values ...float64) []entity.HistoryPoint {
	points := make([]entity.HistoryPoint, len(values))
	for i, v := range values {
		points[i] = entity.HistoryPoint{Value: v}
	}
	return points
}

func TestPredictPrice_IncreasingSeries(t *testing.T) {
	p := PredictPrice(series(1, 2, 3, 4, 5, 6, 7, 8))
	if p.Prediction7d < p.CurrentPrice {
		t.Fatalf("increasing series: 7d prediction %f < last price %f", p.Prediction7d, p.CurrentPrice)
	}
	if p.Prediction30 < p.Prediction7d {
		t.Fatalf("increasing series: 30d %f < 7d %f", p.Prediction30, p.Prediction7d)
	}
	if p.Trend != entity.TrendUp {
		t.Fatalf("expected up trend, got %s", p.Trend)
	}
	if p.Confidence != entity.ConfidenceHigh {
		t.Fatalf("expected high confidence with 8 samples, got %s", p.Confidence)
	}
}

func TestPredictPrice_ConvexRallyNeverProjectsBelowLast(t *testing.T) {
	// A late jump pulls the fitted line well under the final observation;
	// the projection must still not call a loss on a rising series.
	p := PredictPrice(series(1, 2, 3, 4, 5, 6, 7, 8, 100))
	if p.Prediction7d < p.CurrentPrice {
		t.Fatalf("rising series: 7d prediction %f < last price %f", p.Prediction7d, p.CurrentPrice)
	}
	if p.Prediction30 < p.Prediction7d {
		t.Fatalf("rising series: 30d %f < 7d %f", p.Prediction30, p.Prediction7d)
	}
	if p.Trend != entity.TrendUp {
		t.Fatalf("expected up trend, got %s", p.Trend)
	}
}

func TestPredictPrice_NeverNegative(t *testing.T) {
	p := PredictPrice(series(10, 8, 6, 4, 2, 1))
	if p.Prediction7d < 0 || p.Prediction30 < 0 {
		t.Fatalf("negative prediction: 7d=%f 30d=%f", p.Prediction7d, p.Prediction30)
	}
	if p.Trend != entity.TrendDown {
		t.Fatalf("expected down trend, got %s", p.Trend)
	}
}

func TestPredictPrice_ConfidenceSteps(t *testing.T) {
	cases := []struct {
		samples int
		want    entity.Confidence
	}{
		{1, entity.ConfidenceLow},
		{2, entity.ConfidenceLow},
		{3, entity.ConfidenceMedium},
		{6, entity.ConfidenceMedium},
		{7, entity.ConfidenceHigh},
		{20, entity.ConfidenceHigh},
	}
	for _, tc := range cases {
		values := make([]float64, tc.samples)
		for i := range values {
			values[i] = 5
		}
		if p := PredictPrice(series(values...)); p.Confidence != tc.want {
			t.Errorf("%d samples: confidence %s, want %s", tc.samples, p.Confidence, tc.want)
		}
	}
}

func TestPredictPrice_FlatSeries(t *testing.T) {
	p := PredictPrice(series(5, 5, 5, 5, 5))
	if p.Trend != entity.TrendFlat {
		t.Fatalf("expected flat trend, got %s", p.Trend)
	}
	if p.Prediction7d != 5 || p.Prediction30 != 5 {
		t.Fatalf("flat series should project itself, got 7d=%f 30d=%f", p.Prediction7d, p.Prediction30)
	}
}

func TestPredictPrice_Empty(t *testing.T) {
	p := PredictPrice(nil)
	if p.CurrentPrice != 0 || p.Prediction7d != 0 {
		t.Fatalf("empty series should zero out, got %+v", p)
	}
	if p.Confidence != entity.ConfidenceLow {
		t.Fatalf("expected low confidence, got %s", p.Confidence)
	}
}
