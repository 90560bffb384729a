package printer

import (
	"context"

	"github.com/printfleet/supply-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, p *model.Printer) error
	FindByID(ctx context.Context, companyID, id string) (*model.Printer, error)
	FindAll(ctx context.Context, companyID string) ([]model.Printer, error)
	Update(ctx context.Context, p *model.Printer) error
	Delete(ctx context.Context, companyID, id string) error
}
