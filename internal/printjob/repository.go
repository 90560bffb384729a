package printjob

import (
	"context"
	"time"

	"github.com/printfleet/supply-service/internal/model"
)

type Filters struct {
	CompanyID string
	PrinterID string
	ColorMode string
	Page      int
	PageSize  int
}

type Repository interface {
	Create(ctx context.Context, job *model.PrintJob) error
	// ListRecentJobs feeds the supply projection; it returns every job
	// printed at or after since for the company.
	ListRecentJobs(ctx context.Context, companyID string, since time.Time) ([]model.PrintJob, error)
	FindAll(ctx context.Context, filters *Filters) ([]model.PrintJob, int, error)
}
