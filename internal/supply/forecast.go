package supply

import (
	"math"
	"sort"
	"strings"
	"time"
)

const (
	// recentAverageDays is how many trailing daily totals feed the
	// short-term consumption average.
	recentAverageDays = 7

	// safetyFactor inflates predicted consumption by 10% so forecasts err
	// toward earlier depletion rather than later.
	safetyFactor = 1.1
)

// Estimated page yield per cartridge. Stock for toner is counted in
// cartridges, so consumption in pages is compared against stock * yield.
func pagesPerCartridge(color string) int {
	switch strings.ToLower(color) {
	case "black":
		return 2500
	case "tricolor":
		return 1500
	default:
		return 1200
	}
}

// ForecastInput carries everything the forecaster needs for one resource.
type ForecastInput struct {
	Type         ResourceType
	ResourceID   string
	Name         string
	CurrentStock int
	TonerColor   string // only consulted for toner
	Series       ConsumptionSeries
	Now          time.Time
}

// Forecast turns one resource's consumption series plus current stock into a
// projection. Returns ok=false when the resource has too little signal to
// project: fewer than two data points, or zero predicted consumption.
func Forecast(in ForecastInput) (Projection, bool) {
	totals := in.Series.Totals()
	if len(totals) < 2 {
		return Projection{}, false
	}

	trend := TrendSlope(totals)
	recentAvg := mean(tail(totals, recentAverageDays))

	predictedDaily := (recentAvg + trend) * safetyFactor
	if predictedDaily < 0 {
		predictedDaily = 0
	}
	if predictedDaily == 0 {
		// flat zero consumption is not actionable, and days remaining
		// would divide by zero
		return Projection{}, false
	}

	availablePages := float64(in.CurrentStock)
	pagesPerUnit := 0
	if in.Type == ResourceToner {
		pagesPerUnit = pagesPerCartridge(in.TonerColor)
		availablePages = float64(in.CurrentStock * pagesPerUnit)
	}

	daysRemaining := int(math.Floor(availablePages / predictedDaily))

	p := Projection{
		Type:                   in.Type,
		ResourceID:             in.ResourceID,
		Name:                   in.Name,
		CurrentStock:           in.CurrentStock,
		DailyConsumption:       round2(predictedDaily),
		Trend:                  round2(trend),
		DaysRemaining:          daysRemaining,
		EstimatedDepletionDate: in.Now.AddDate(0, 0, daysRemaining),
		Status:                 statusFor(daysRemaining),
		Confidence:             confidenceFor(totals),
		DataPointCount:         len(totals),
		EstimatedPagesPerUnit:  pagesPerUnit,
	}
	return p, true
}

// statusFor grades urgency from whole days remaining.
func statusFor(daysRemaining int) Status {
	switch {
	case daysRemaining <= 3:
		return StatusCritical
	case daysRemaining <= 7:
		return StatusWarning
	case daysRemaining <= 14:
		return StatusCaution
	default:
		return StatusNormal
	}
}

// confidenceFor labels projection reliability from the population variance of
// the daily totals. A mean of zero degenerates to low, since no non-negative
// variance is below zero.
func confidenceFor(totals []float64) Confidence {
	m := mean(totals)
	var variance float64
	for _, y := range totals {
		d := y - m
		variance += d * d
	}
	variance /= float64(len(totals))

	switch {
	case variance < m*0.5:
		return ConfidenceHigh
	case variance < m:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// SortByUrgency orders projections ascending by days remaining, most urgent
// first.
func SortByUrgency(projections []Projection) {
	sort.SliceStable(projections, func(i, j int) bool {
		return projections[i].DaysRemaining < projections[j].DaysRemaining
	})
}

func tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
