package maintenance

import (
	"context"

	"github.com/printfleet/supply-service/internal/model"
)

type Filters struct {
	CompanyID string
	PrinterID string
	Page      int
	PageSize  int
}

type Repository interface {
	Create(ctx context.Context, rec *model.MaintenanceRecord) error
	FindAll(ctx context.Context, filters *Filters) ([]model.MaintenanceRecord, int, error)
}
