package supply

import "time"

type ResourceType string

const (
	ResourcePaper ResourceType = "paper"
	ResourceToner ResourceType = "toner"
)

type Status string

const (
	StatusNormal   Status = "normal"
	StatusCaution  Status = "caution"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// DailyConsumption is one calendar day's page total for a resource. Days
// without any matching job have no entry at all.
type DailyConsumption struct {
	Date  time.Time `json:"date"`
	Pages int       `json:"pages"`
}

// ConsumptionSeries is ascending by date with at most one entry per day.
type ConsumptionSeries []DailyConsumption

// Totals returns the page counts in series order.
func (s ConsumptionSeries) Totals() []float64 {
	out := make([]float64, len(s))
	for i, d := range s {
		out[i] = float64(d.Pages)
	}
	return out
}

// Projection is recomputed on every request and never persisted.
type Projection struct {
	Type                   ResourceType `json:"type"`
	ResourceID             string       `json:"resource_id"`
	Name                   string       `json:"name"`
	CurrentStock           int          `json:"current_stock"`
	DailyConsumption       float64      `json:"daily_consumption"`
	Trend                  float64      `json:"trend"`
	DaysRemaining          int          `json:"days_remaining"`
	EstimatedDepletionDate time.Time    `json:"estimated_depletion_date"`
	Status                 Status       `json:"status"`
	Confidence             Confidence   `json:"confidence"`
	DataPointCount         int          `json:"data_point_count"`
	EstimatedPagesPerUnit  int          `json:"estimated_pages_per_unit,omitempty"` // toner only
}
