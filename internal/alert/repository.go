package alert

import (
	"context"

	"github.com/printfleet/supply-service/internal/model"
)

type Filters struct {
	CompanyID  string
	UnreadOnly bool
	Page       int
	PageSize   int
}

type Repository interface {
	Create(ctx context.Context, alert *model.Alert) error
	ListUnread(ctx context.Context, companyID string) ([]model.Alert, error)
	FindAll(ctx context.Context, filters *Filters) ([]model.Alert, int, error)
	MarkRead(ctx context.Context, alertID string) error
}
