package model

import "time"

const (
	ColorModeBW    = "bw"
	ColorModeColor = "color"
)

type PrintJob struct {
	ID           string    `db:"id" json:"id"`
	CompanyID    string    `db:"company_id" json:"company_id"`
	PrinterID    *string   `db:"printer_id" json:"printer_id"`
	PaperTypeID  *string   `db:"paper_type_id" json:"paper_type_id"` // Nullable; jobs without one are skipped by paper analysis
	DocumentName *string   `db:"document_name" json:"document_name"`
	PageCount    int       `db:"page_count" json:"page_count"`
	ColorMode    string    `db:"color_mode" json:"color_mode"` // 'bw' or 'color'
	PrintedAt    time.Time `db:"printed_at" json:"printed_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
