package printer

import (
	"context"

	"github.com/printfleet/supply-service/internal/model"
)

type CreatePrinterInput struct {
	CompanyID    string
	Name         string
	Model        *string
	SerialNumber *string
	Location     *string
	IsColor      bool
}

type UpdatePrinterInput struct {
	CompanyID    string
	ID           string
	Name         string
	Model        *string
	SerialNumber *string
	Location     *string
	IsColor      bool
	IsActive     bool
}

type UseCase interface {
	CreatePrinter(ctx context.Context, input *CreatePrinterInput) (*model.Printer, error)
	GetPrinter(ctx context.Context, companyID, id string) (*model.Printer, error)
	ListPrinters(ctx context.Context, companyID string) ([]model.Printer, error)
	UpdatePrinter(ctx context.Context, input *UpdatePrinterInput) (*model.Printer, error)
	DeletePrinter(ctx context.Context, companyID, id string) error
	// SearchPrinters runs a fuzzy fleet search; falls back to a plain list
	// when the search backend is unavailable.
	SearchPrinters(ctx context.Context, companyID, query string) ([]model.Printer, error)
}
