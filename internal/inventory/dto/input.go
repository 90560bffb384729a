package dto

type CreatePaperTypeInput struct {
	CompanyID    string
	Name         string
	Size         *string
	GramsPerSqm  *int
	Stock        int
	ReorderPoint int
}

type CreateTonerCartridgeInput struct {
	CompanyID    string
	Name         string
	Color        string // 'black', 'tricolor', ...
	Stock        int
	ReorderPoint int
}

type AdjustStockInput struct {
	CompanyID      string
	ResourceType   string // 'paper' or 'toner'
	ResourceID     string
	QuantityChange int
	Reason         string
	ReferenceID    string
	ReferenceType  string // 'manual_adjustment', 'print_job', 'restock'
	UserID         string
}
