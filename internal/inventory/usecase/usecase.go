package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/inventory"
	"github.com/printfleet/supply-service/internal/inventory/dto"
	"github.com/printfleet/supply-service/internal/model"
	"github.com/printfleet/supply-service/internal/pkg/logger"
)

var ErrInsufficientStock = errors.New("insufficient stock")
var ErrResourceNotFound = errors.New("resource not found")

// Locker serializes concurrent stock adjustments on the same resource.
// Satisfied by cache.RedisClient.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) (bool, error)
}

type inventoryUseCase struct {
	repo   inventory.Repository
	locker Locker // nil skips locking (single-writer setups, tests)
	logger logger.Logger
}

func NewInventoryUseCase(repo inventory.Repository, locker Locker, log logger.Logger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		locker: locker,
		logger: log,
	}
}

func (uc *inventoryUseCase) ListPaperTypes(ctx context.Context, companyID string) ([]model.PaperType, error) {
	return uc.repo.ListPaperTypes(ctx, companyID)
}

func (uc *inventoryUseCase) CreatePaperType(ctx context.Context, input *dto.CreatePaperTypeInput) (*model.PaperType, error) {
	now := time.Now()
	p := &model.PaperType{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CompanyID:    input.CompanyID,
		Name:         input.Name,
		Size:         input.Size,
		GramsPerSqm:  input.GramsPerSqm,
		Stock:        input.Stock,
		ReorderPoint: input.ReorderPoint,
	}
	if err := uc.repo.CreatePaperType(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *inventoryUseCase) ListTonerCartridges(ctx context.Context, companyID string) ([]model.TonerCartridge, error) {
	return uc.repo.ListTonerCartridges(ctx, companyID)
}

func (uc *inventoryUseCase) CreateTonerCartridge(ctx context.Context, input *dto.CreateTonerCartridgeInput) (*model.TonerCartridge, error) {
	now := time.Now()
	t := &model.TonerCartridge{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CompanyID:    input.CompanyID,
		Name:         input.Name,
		Color:        input.Color,
		Stock:        input.Stock,
		ReorderPoint: input.ReorderPoint,
	}
	if err := uc.repo.CreateTonerCartridge(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) error {
	if uc.locker != nil {
		lockKey := fmt.Sprintf("lock:stock:%s:%s:%s", input.CompanyID, input.ResourceType, input.ResourceID)
		lockValue := uuid.New().String()

		acquired := false
		for i := 0; i < 3; i++ {
			ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
			if err != nil {
				uc.logger.Error("failed to acquire stock lock", zap.Error(err))
			}
			if ok {
				acquired = true
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		if !acquired {
			return errors.New("system busy, please try again later (lock)")
		}
		defer uc.locker.ReleaseLock(ctx, lockKey, lockValue)
	}

	currentStock, err := uc.currentStock(ctx, input)
	if err != nil {
		return err
	}

	newStock := currentStock + input.QuantityChange
	if newStock < 0 {
		return ErrInsufficientStock
	}

	var refID *string
	if input.ReferenceID != "" {
		refID = &input.ReferenceID
	}
	var refType *string
	if input.ReferenceType != "" {
		refType = &input.ReferenceType
	}
	var createdBy *string
	if input.UserID != "" && input.UserID != "system" {
		createdBy = &input.UserID
	}

	movement := &model.StockMovement{
		ID:             uuid.New().String(),
		CompanyID:      input.CompanyID,
		ResourceType:   input.ResourceType,
		ResourceID:     input.ResourceID,
		QuantityChange: input.QuantityChange,
		QuantityBefore: currentStock,
		QuantityAfter:  newStock,
		ReferenceType:  refType,
		ReferenceID:    refID,
		Notes:          input.Reason,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now(),
	}

	return uc.repo.SetStockWithMovement(ctx, input.ResourceType, input.ResourceID, input.CompanyID, newStock, movement)
}

func (uc *inventoryUseCase) currentStock(ctx context.Context, input *dto.AdjustStockInput) (int, error) {
	switch input.ResourceType {
	case "toner":
		t, err := uc.repo.GetTonerCartridge(ctx, input.CompanyID, input.ResourceID)
		if err != nil {
			return 0, err
		}
		if t == nil {
			return 0, ErrResourceNotFound
		}
		return t.Stock, nil
	default:
		p, err := uc.repo.GetPaperType(ctx, input.CompanyID, input.ResourceID)
		if err != nil {
			return 0, err
		}
		if p == nil {
			return 0, ErrResourceNotFound
		}
		return p.Stock, nil
	}
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}
