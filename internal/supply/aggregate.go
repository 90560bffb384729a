package supply

import (
	"sort"
	"time"

	"github.com/printfleet/supply-service/internal/model"
)

// AnalysisWindowDays is the trailing window of job history fed into the
// projection. Jobs older than this are ignored.
const AnalysisWindowDays = 90

// TonerResourceKey is the pseudo-resource all color jobs aggregate under.
// Print jobs do not reference a specific cartridge, so toner consumption can
// only be tracked company-wide per color mode, not per cartridge.
const TonerResourceKey = "color"

// ConsumptionHistory holds the per-resource daily series derived from raw job
// history. Paper is keyed by paper type ID; toner is a single company-wide
// series for color jobs.
type ConsumptionHistory struct {
	Paper map[string]ConsumptionSeries
	Toner ConsumptionSeries
}

// AggregateConsumption buckets jobs from the trailing window into daily
// totals. Jobs without a paper type are excluded from paper analysis; only
// color jobs count toward toner.
func AggregateConsumption(jobs []model.PrintJob, now time.Time) ConsumptionHistory {
	cutoff := now.AddDate(0, 0, -AnalysisWindowDays)

	paperDays := make(map[string]map[string]int)
	tonerDays := make(map[string]int)

	for _, job := range jobs {
		if job.PrintedAt.Before(cutoff) {
			continue
		}
		day := job.PrintedAt.Format(time.DateOnly)

		if job.PaperTypeID != nil && *job.PaperTypeID != "" {
			byDay, ok := paperDays[*job.PaperTypeID]
			if !ok {
				byDay = make(map[string]int)
				paperDays[*job.PaperTypeID] = byDay
			}
			byDay[day] += job.PageCount
		}

		if job.ColorMode == model.ColorModeColor {
			tonerDays[day] += job.PageCount
		}
	}

	history := ConsumptionHistory{
		Paper: make(map[string]ConsumptionSeries, len(paperDays)),
		Toner: buildSeries(tonerDays),
	}
	for paperTypeID, byDay := range paperDays {
		history.Paper[paperTypeID] = buildSeries(byDay)
	}
	return history
}

func buildSeries(byDay map[string]int) ConsumptionSeries {
	if len(byDay) == 0 {
		return nil
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	// ISO dates sort lexicographically
	sort.Strings(days)

	series := make(ConsumptionSeries, 0, len(days))
	for _, day := range days {
		date, err := time.Parse(time.DateOnly, day)
		if err != nil {
			continue
		}
		series = append(series, DailyConsumption{Date: date, Pages: byDay[day]})
	}
	return series
}
