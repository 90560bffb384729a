package company

import (
	"context"

	"github.com/printfleet/supply-service/internal/model"
)

type Repository interface {
	// ListActive returns every active tenant; the alert sweeper iterates
	// this set.
	ListActive(ctx context.Context) ([]model.Company, error)
	FindByID(ctx context.Context, id string) (*model.Company, error)
}
