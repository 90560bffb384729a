package supply

import (
	"context"
	"time"

	"github.com/printfleet/supply-service/internal/model"
)

type UseCase interface {
	// GetProjections returns the company's supply projections sorted most
	// urgent first.
	GetProjections(ctx context.Context, companyID string) ([]Projection, error)
	// GenerateAlerts runs one alerting pass for a company. Safe to call on
	// every polling cycle; dedup keeps it from spamming.
	GenerateAlerts(ctx context.Context, companyID string) error
	// GenerateAlertsAll sweeps every active company. A failing company is
	// logged and skipped, never aborts the sweep.
	GenerateAlertsAll(ctx context.Context) error
}

// Collaborator stores. The engine only reads job history and stock; the alert
// store is its single write surface.

type JobSource interface {
	ListRecentJobs(ctx context.Context, companyID string, since time.Time) ([]model.PrintJob, error)
}

type StockSource interface {
	ListPaperTypes(ctx context.Context, companyID string) ([]model.PaperType, error)
	ListTonerCartridges(ctx context.Context, companyID string) ([]model.TonerCartridge, error)
}

type AlertStore interface {
	ListUnread(ctx context.Context, companyID string) ([]model.Alert, error)
	Create(ctx context.Context, alert *model.Alert) error
	MarkRead(ctx context.Context, alertID string) error
}

type CompanySource interface {
	ListActive(ctx context.Context) ([]model.Company, error)
}

// Cache is satisfied by cache.RedisClient. It doubles as the per-tenant lock
// that serializes alert generation, closing the check-then-create race
// between concurrent sweeps for the same company.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) (bool, error)
}
