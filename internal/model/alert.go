package model

import "time"

const (
	AlertSeverityInfo    = "info"
	AlertSeverityWarning = "warning"
	AlertSeverityError   = "error"
)

// Alert rows are immutable except for the read flag. "Updating" an alert means
// marking the old one read and creating a fresh row.
type Alert struct {
	ID           string    `db:"id" json:"id"`
	CompanyID    string    `db:"company_id" json:"company_id"`
	Type         string    `db:"type" json:"type"`
	Title        string    `db:"title" json:"title"`
	Message      string    `db:"message" json:"message"`
	Severity     string    `db:"severity" json:"severity"`
	Read         bool      `db:"read" json:"read"`
	ResourceID   string    `db:"resource_id" json:"resource_id"`
	ResourceType string    `db:"resource_type" json:"resource_type"`
	// DaysRemaining carries the projection value the alert was raised at, so
	// dedup compares numbers instead of parsing the message text. Rows created
	// before this column existed hold 0 and always qualify for a refresh.
	DaysRemaining int       `db:"days_remaining" json:"days_remaining"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
