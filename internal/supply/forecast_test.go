package supply

import (
	"testing"
	"time"
)

func seriesOf(now time.Time, totals ...int) ConsumptionSeries {
	s := make(ConsumptionSeries, 0, len(totals))
	for i, pages := range totals {
		s = append(s, DailyConsumption{
			Date:  now.AddDate(0, 0, -(len(totals) - i)),
			Pages: pages,
		})
	}
	return s
}

func TestForecastSteadyPaper(t *testing.T) {
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	p, ok := Forecast(ForecastInput{
		Type:         ResourcePaper,
		ResourceID:   "p1",
		Name:         "Standard A4",
		CurrentStock: 100,
		Series:       seriesOf(now, 10, 10, 10, 10, 10, 10, 10),
		Now:          now,
	})
	if !ok {
		t.Fatal("expected a projection")
	}

	// flat series: trend 0, predicted 10*1.1 = 11, floor(100/11) = 9
	if p.DailyConsumption != 11 {
		t.Fatalf("daily consumption = %v, want 11", p.DailyConsumption)
	}
	if p.Trend != 0 {
		t.Fatalf("trend = %v, want 0", p.Trend)
	}
	if p.DaysRemaining != 9 {
		t.Fatalf("days remaining = %d, want 9", p.DaysRemaining)
	}
	if p.Status != StatusCaution {
		t.Fatalf("status = %s, want caution", p.Status)
	}
	if p.Confidence != ConfidenceHigh {
		t.Fatalf("confidence = %s, want high", p.Confidence)
	}
	want := now.AddDate(0, 0, 9)
	if !p.EstimatedDepletionDate.Equal(want) {
		t.Fatalf("depletion date = %v, want %v", p.EstimatedDepletionDate, want)
	}
	if p.DataPointCount != 7 {
		t.Fatalf("data points = %d, want 7", p.DataPointCount)
	}
	if p.EstimatedPagesPerUnit != 0 {
		t.Fatalf("paper projections carry no pages-per-unit, got %d", p.EstimatedPagesPerUnit)
	}
}

func TestForecastTonerYields(t *testing.T) {
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		color     string
		wantYield int
	}{
		{"black", 2500},
		{"tricolor", 1500},
		{"magenta", 1200},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			p, ok := Forecast(ForecastInput{
				Type:         ResourceToner,
				ResourceID:   "t1",
				Name:         "HP 305",
				CurrentStock: 2,
				TonerColor:   tt.color,
				Series:       seriesOf(now, 100, 100),
				Now:          now,
			})
			if !ok {
				t.Fatal("expected a projection")
			}
			if p.EstimatedPagesPerUnit != tt.wantYield {
				t.Fatalf("pages per unit = %d, want %d", p.EstimatedPagesPerUnit, tt.wantYield)
			}
			// 2 cartridges * yield pages at 110 pages/day
			wantDays := int(float64(2*tt.wantYield) / 110.0)
			if p.DaysRemaining != wantDays {
				t.Fatalf("days remaining = %d, want %d", p.DaysRemaining, wantDays)
			}
		})
	}
}

func TestForecastTonerBlackScenario(t *testing.T) {
	// black cartridge, stock 2 -> 5000 pages, ~100 pages/day predicted
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	// recentAvg must come out so that predicted = 100: 100/1.1 = 90.909...
	series := make(ConsumptionSeries, 0, 7)
	for i := 0; i < 7; i++ {
		series = append(series, DailyConsumption{Date: now.AddDate(0, 0, i-7), Pages: 91})
	}
	p, ok := Forecast(ForecastInput{
		Type:         ResourceToner,
		ResourceID:   "t1",
		Name:         "Black",
		CurrentStock: 2,
		TonerColor:   "black",
		Series:       series,
		Now:          now,
	})
	if !ok {
		t.Fatal("expected a projection")
	}
	// floor(5000 / (91*1.1)) = floor(49.95) = 49
	if p.DaysRemaining != 49 {
		t.Fatalf("days remaining = %d, want 49", p.DaysRemaining)
	}
	if p.Status != StatusNormal {
		t.Fatalf("status = %s, want normal", p.Status)
	}
}

func TestForecastSinglePointExcluded(t *testing.T) {
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	_, ok := Forecast(ForecastInput{
		Type:         ResourcePaper,
		ResourceID:   "p1",
		Name:         "A4",
		CurrentStock: 100,
		Series:       seriesOf(now, 10),
		Now:          now,
	})
	if ok {
		t.Fatal("single data point must not produce a projection")
	}
}

func TestForecastZeroPredictedExcluded(t *testing.T) {
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	// zero consumption every sampled day: recentAvg 0, trend 0
	_, ok := Forecast(ForecastInput{
		Type:         ResourcePaper,
		ResourceID:   "p1",
		Name:         "A4",
		CurrentStock: 100,
		Series:       seriesOf(now, 0, 0, 0),
		Now:          now,
	})
	if ok {
		t.Fatal("zero predicted consumption must not produce a projection")
	}
}

func TestForecastNegativePredictionClampedOut(t *testing.T) {
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	// steep decline: slope -49.5 against a recent average of 34, clamps to
	// zero and is excluded
	_, ok := Forecast(ForecastInput{
		Type:         ResourcePaper,
		ResourceID:   "p1",
		Name:         "A4",
		CurrentStock: 100,
		Series:       seriesOf(now, 100, 1, 1),
		Now:          now,
	})
	if ok {
		t.Fatal("negative prediction must clamp to zero and be excluded")
	}
}

func TestStatusBoundaries(t *testing.T) {
	tests := []struct {
		days int
		want Status
	}{
		{0, StatusCritical},
		{3, StatusCritical},
		{4, StatusWarning},
		{7, StatusWarning},
		{8, StatusCaution},
		{14, StatusCaution},
		{15, StatusNormal},
	}
	for _, tt := range tests {
		if got := statusFor(tt.days); got != tt.want {
			t.Errorf("statusFor(%d) = %s, want %s", tt.days, got, tt.want)
		}
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name   string
		totals []float64
		want   Confidence
	}{
		{"flat high", []float64{10, 10, 10, 10, 10, 10, 10}, ConfidenceHigh},
		// mean 10, variance 4: 4 < 5 -> high
		{"mild variance high", []float64{8, 12, 8, 12}, ConfidenceHigh},
		// mean 10, variance 9: 9 >= 5, 9 < 10 -> medium
		{"moderate variance medium", []float64{7, 13, 7, 13}, ConfidenceMedium},
		// mean 10, variance 100 -> low
		{"wild variance low", []float64{0, 20, 0, 20}, ConfidenceLow},
		// mean 0 degenerates: variance 0 is not < 0 -> low
		{"zero mean low", []float64{0, 0, 0}, ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := confidenceFor(tt.totals); got != tt.want {
				t.Fatalf("confidenceFor(%v) = %s, want %s", tt.totals, got, tt.want)
			}
		})
	}
}

func TestForecastMonotonicInStock(t *testing.T) {
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	series := seriesOf(now, 10, 12, 9, 11, 10, 10, 10)

	prevDays := int(^uint(0) >> 1)
	for stock := 500; stock >= 0; stock -= 25 {
		p, ok := Forecast(ForecastInput{
			Type:         ResourcePaper,
			ResourceID:   "p1",
			Name:         "A4",
			CurrentStock: stock,
			Series:       series,
			Now:          now,
		})
		if !ok {
			t.Fatalf("expected projection at stock %d", stock)
		}
		if p.DaysRemaining > prevDays {
			t.Fatalf("days remaining increased as stock decreased: stock=%d days=%d prev=%d", stock, p.DaysRemaining, prevDays)
		}
		prevDays = p.DaysRemaining
	}
}

func TestForecastDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	in := ForecastInput{
		Type:         ResourcePaper,
		ResourceID:   "p1",
		Name:         "A4",
		CurrentStock: 237,
		Series:       seriesOf(now, 5, 9, 14, 3, 11, 6, 10, 8),
		Now:          now,
	}
	a, okA := Forecast(in)
	b, okB := Forecast(in)
	if !okA || !okB {
		t.Fatal("expected projections")
	}
	if a != b {
		t.Fatalf("forecast is not deterministic: %+v vs %+v", a, b)
	}
}

func TestForecastRecentAverageUsesTrailingSeven(t *testing.T) {
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	// old heavier days must not leak into the recent average; only the
	// trailing 7 (all 10s) count, but the trend still sees the decline
	series := seriesOf(now, 20, 20, 10, 10, 10, 10, 10, 10, 10)
	p, ok := Forecast(ForecastInput{
		Type:         ResourcePaper,
		ResourceID:   "p1",
		Name:         "A4",
		CurrentStock: 1000,
		Series:       series,
		Now:          now,
	})
	if !ok {
		t.Fatal("expected a projection")
	}
	if p.Trend >= 0 {
		t.Fatalf("declining series should have negative trend, got %v", p.Trend)
	}
	// recentAvg is exactly 10; predicted = (10 + trend) * 1.1 < 11
	if p.DailyConsumption >= 11 {
		t.Fatalf("daily consumption = %v, want < 11", p.DailyConsumption)
	}
}

func TestSortByUrgency(t *testing.T) {
	projections := []Projection{
		{ResourceID: "a", DaysRemaining: 20},
		{ResourceID: "b", DaysRemaining: 2},
		{ResourceID: "c", DaysRemaining: 9},
	}
	SortByUrgency(projections)
	if projections[0].ResourceID != "b" || projections[1].ResourceID != "c" || projections[2].ResourceID != "a" {
		t.Fatalf("unexpected order: %+v", projections)
	}
}
