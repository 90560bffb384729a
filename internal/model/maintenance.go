package model

import "time"

type MaintenanceRecord struct {
	ID          string    `db:"id" json:"id"`
	CompanyID   string    `db:"company_id" json:"company_id"`
	PrinterID   string    `db:"printer_id" json:"printer_id"`
	Description string    `db:"description" json:"description"`
	PerformedBy *string   `db:"performed_by" json:"performed_by"`
	PerformedAt time.Time `db:"performed_at" json:"performed_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
