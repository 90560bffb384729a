package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/inventory"
	invdto "github.com/printfleet/supply-service/internal/inventory/dto"
	"github.com/printfleet/supply-service/internal/model"
	"github.com/printfleet/supply-service/internal/pkg/logger"
	"github.com/printfleet/supply-service/internal/printjob"
)

var ErrInvalidColorMode = errors.New("color_mode must be 'bw' or 'color'")
var ErrInvalidPageCount = errors.New("page_count must be > 0")

type printJobUseCase struct {
	repo      printjob.Repository
	inventory inventory.UseCase
	logger    logger.Logger
}

func NewPrintJobUseCase(repo printjob.Repository, inv inventory.UseCase, log logger.Logger) printjob.UseCase {
	return &printJobUseCase{
		repo:      repo,
		inventory: inv,
		logger:    log,
	}
}

func (uc *printJobUseCase) RecordJob(ctx context.Context, input *printjob.RecordJobInput) (*model.PrintJob, error) {
	if input.ColorMode != model.ColorModeBW && input.ColorMode != model.ColorModeColor {
		return nil, ErrInvalidColorMode
	}
	if input.PageCount <= 0 {
		return nil, ErrInvalidPageCount
	}

	printedAt := input.PrintedAt
	if printedAt.IsZero() {
		printedAt = time.Now()
	}

	job := &model.PrintJob{
		ID:           uuid.New().String(),
		CompanyID:    input.CompanyID,
		PrinterID:    input.PrinterID,
		PaperTypeID:  input.PaperTypeID,
		DocumentName: input.DocumentName,
		PageCount:    input.PageCount,
		ColorMode:    input.ColorMode,
		PrintedAt:    printedAt,
		CreatedAt:    time.Now(),
	}

	if err := uc.repo.Create(ctx, job); err != nil {
		return nil, err
	}

	// Stock deduction is best-effort: a failed adjustment (e.g. stock was
	// never loaded for this paper type) must not lose the job record.
	if input.PaperTypeID != nil && *input.PaperTypeID != "" {
		err := uc.inventory.AdjustStock(ctx, &invdto.AdjustStockInput{
			CompanyID:      input.CompanyID,
			ResourceType:   "paper",
			ResourceID:     *input.PaperTypeID,
			QuantityChange: -input.PageCount,
			Reason:         "Print job",
			ReferenceID:    job.ID,
			ReferenceType:  "print_job",
			UserID:         "system",
		})
		if err != nil {
			uc.logger.Warn("failed to deduct paper stock for job",
				zap.String("job_id", job.ID),
				zap.String("paper_type_id", *input.PaperTypeID),
				zap.Error(err),
			)
		}
	}

	return job, nil
}

func (uc *printJobUseCase) ListJobs(ctx context.Context, filters *printjob.Filters) ([]model.PrintJob, int, error) {
	return uc.repo.FindAll(ctx, filters)
}
