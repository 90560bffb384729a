package inventory

import (
	"context"

	"github.com/printfleet/supply-service/internal/inventory/dto"
	"github.com/printfleet/supply-service/internal/model"
)

type Repository interface {
	// Paper types
	ListPaperTypes(ctx context.Context, companyID string) ([]model.PaperType, error)
	GetPaperType(ctx context.Context, companyID, id string) (*model.PaperType, error)
	CreatePaperType(ctx context.Context, p *model.PaperType) error

	// Toner cartridges
	ListTonerCartridges(ctx context.Context, companyID string) ([]model.TonerCartridge, error)
	GetTonerCartridge(ctx context.Context, companyID, id string) (*model.TonerCartridge, error)
	CreateTonerCartridge(ctx context.Context, t *model.TonerCartridge) error

	// Transactional stock write + audit row
	SetStockWithMovement(ctx context.Context, resourceType, resourceID, companyID string, newStock int, movement *model.StockMovement) error

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
