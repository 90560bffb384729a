package printjob

import (
	"context"
	"time"

	"github.com/printfleet/supply-service/internal/model"
)

type RecordJobInput struct {
	CompanyID    string
	PrinterID    *string
	PaperTypeID  *string
	DocumentName *string
	PageCount    int
	ColorMode    string
	PrintedAt    time.Time
}

type UseCase interface {
	// RecordJob persists the job and deducts the consumed sheets from the
	// paper type's stock when one is referenced.
	RecordJob(ctx context.Context, input *RecordJobInput) (*model.PrintJob, error)
	ListJobs(ctx context.Context, filters *Filters) ([]model.PrintJob, int, error)
}
