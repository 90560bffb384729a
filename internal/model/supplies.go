package model

import "time"

type PaperType struct {
	BaseModel
	CompanyID    string  `db:"company_id" json:"company_id"`
	Name         string  `db:"name" json:"name"`
	Size         *string `db:"size" json:"size"`     // e.g. 'A4', 'Letter'
	GramsPerSqm  *int    `db:"grams_per_sqm" json:"grams_per_sqm"`
	Stock        int     `db:"stock" json:"stock"` // sheets on hand
	ReorderPoint int     `db:"reorder_point" json:"reorder_point"`
}

type TonerCartridge struct {
	BaseModel
	CompanyID    string `db:"company_id" json:"company_id"`
	Name         string `db:"name" json:"name"`
	Color        string `db:"color" json:"color"` // 'black', 'tricolor', ...
	Stock        int    `db:"stock" json:"stock"` // cartridges on hand
	ReorderPoint int    `db:"reorder_point" json:"reorder_point"`
}

// StockMovement is the audit row written alongside every stock adjustment.
type StockMovement struct {
	ID             string    `db:"id" json:"id"`
	CompanyID      string    `db:"company_id" json:"company_id"`
	ResourceType   string    `db:"resource_type" json:"resource_type"` // 'paper' or 'toner'
	ResourceID     string    `db:"resource_id" json:"resource_id"`
	QuantityChange int       `db:"quantity_change" json:"quantity_change"`
	QuantityBefore int       `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string   `db:"reference_type" json:"reference_type"` // 'manual_adjustment', 'print_job', 'restock'
	ReferenceID    *string   `db:"reference_id" json:"reference_id"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedBy      *string   `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
