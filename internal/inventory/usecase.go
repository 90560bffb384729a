package inventory

import (
	"context"

	"github.com/printfleet/supply-service/internal/inventory/dto"
	"github.com/printfleet/supply-service/internal/model"
)

type UseCase interface {
	ListPaperTypes(ctx context.Context, companyID string) ([]model.PaperType, error)
	CreatePaperType(ctx context.Context, input *dto.CreatePaperTypeInput) (*model.PaperType, error)
	ListTonerCartridges(ctx context.Context, companyID string) ([]model.TonerCartridge, error)
	CreateTonerCartridge(ctx context.Context, input *dto.CreateTonerCartridgeInput) (*model.TonerCartridge, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
