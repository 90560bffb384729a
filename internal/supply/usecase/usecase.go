package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/model"
	"github.com/printfleet/supply-service/internal/pkg/logger"
	"github.com/printfleet/supply-service/internal/supply"
)

type Options struct {
	// QueryTimeout bounds the 90-day history scan. Zero disables the bound.
	QueryTimeout time.Duration
	// ProjectionCacheTTL controls how long projection reads are served from
	// cache. Zero disables caching.
	ProjectionCacheTTL time.Duration
}

type supplyUseCase struct {
	jobs      supply.JobSource
	stock     supply.StockSource
	alerts    supply.AlertStore
	companies supply.CompanySource
	cache     supply.Cache // nil disables caching and sweep locking
	logger    logger.Logger
	opts      Options
	now       func() time.Time
}

func NewSupplyUseCase(
	jobs supply.JobSource,
	stock supply.StockSource,
	alerts supply.AlertStore,
	companies supply.CompanySource,
	cache supply.Cache,
	log logger.Logger,
	opts Options,
) supply.UseCase {
	return &supplyUseCase{
		jobs:      jobs,
		stock:     stock,
		alerts:    alerts,
		companies: companies,
		cache:     cache,
		logger:    log,
		opts:      opts,
		now:       time.Now,
	}
}

func (uc *supplyUseCase) GetProjections(ctx context.Context, companyID string) ([]supply.Projection, error) {
	cacheKey := "supply:projections:" + companyID

	if uc.cache != nil && uc.opts.ProjectionCacheTTL > 0 {
		var cached []supply.Projection
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("projection cache read failed", zap.String("company_id", companyID), zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	projections, err := uc.computeProjections(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && uc.opts.ProjectionCacheTTL > 0 {
		if err := uc.cache.SetJSON(ctx, cacheKey, projections, uc.opts.ProjectionCacheTTL); err != nil {
			uc.logger.Warn("projection cache write failed", zap.String("company_id", companyID), zap.Error(err))
		}
	}

	return projections, nil
}

// computeProjections re-derives everything from current job history and stock.
// The result is pure in its inputs: identical history and stock always yield
// identical projections.
func (uc *supplyUseCase) computeProjections(ctx context.Context, companyID string) ([]supply.Projection, error) {
	if uc.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.opts.QueryTimeout)
		defer cancel()
	}

	now := uc.now()
	since := now.AddDate(0, 0, -supply.AnalysisWindowDays)

	jobs, err := uc.jobs.ListRecentJobs(ctx, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("list recent jobs: %w", err)
	}
	history := supply.AggregateConsumption(jobs, now)

	projections := make([]supply.Projection, 0)

	papers, err := uc.stock.ListPaperTypes(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list paper types: %w", err)
	}
	for _, paper := range papers {
		series, ok := history.Paper[paper.ID]
		if !ok {
			continue // no consumption in the window, nothing to project
		}
		p, ok := supply.Forecast(supply.ForecastInput{
			Type:         supply.ResourcePaper,
			ResourceID:   paper.ID,
			Name:         paper.Name,
			CurrentStock: paper.Stock,
			Series:       series,
			Now:          now,
		})
		if ok {
			projections = append(projections, p)
		}
	}

	// Jobs don't reference a cartridge, so every cartridge is projected
	// against the company-wide color consumption series.
	if len(history.Toner) > 0 {
		toners, err := uc.stock.ListTonerCartridges(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("list toner cartridges: %w", err)
		}
		for _, toner := range toners {
			p, ok := supply.Forecast(supply.ForecastInput{
				Type:         supply.ResourceToner,
				ResourceID:   toner.ID,
				Name:         toner.Name,
				CurrentStock: toner.Stock,
				TonerColor:   toner.Color,
				Series:       history.Toner,
				Now:          now,
			})
			if ok {
				projections = append(projections, p)
			}
		}
	}

	supply.SortByUrgency(projections)
	return projections, nil
}

func (uc *supplyUseCase) GenerateAlerts(ctx context.Context, companyID string) error {
	if uc.cache != nil {
		lockKey := "lock:supply_alerts:" + companyID
		lockValue := uuid.New().String()

		acquired, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, time.Minute)
		if err != nil {
			uc.logger.Error("failed to acquire alert sweep lock", zap.String("company_id", companyID), zap.Error(err))
		}
		if !acquired {
			// another sweep holds the tenant; this cycle's data would be
			// identical anyway
			uc.logger.Debug("alert sweep already running", zap.String("company_id", companyID))
			return nil
		}
		defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)
	}

	projections, err := uc.computeProjections(ctx, companyID)
	if err != nil {
		return err
	}

	existing, err := uc.alerts.ListUnread(ctx, companyID)
	if err != nil {
		return fmt.Errorf("list unread alerts: %w", err)
	}

	now := uc.now()
	for _, projection := range projections {
		for _, candidate := range supply.AlertsFor(projection) {
			uc.applyCandidate(ctx, companyID, candidate, existing, now)
		}
	}

	return nil
}

// applyCandidate reconciles one candidate against the store. Failures are
// logged and swallowed so one resource never blocks the rest of the pass.
func (uc *supplyUseCase) applyCandidate(ctx context.Context, companyID string, candidate supply.AlertCandidate, existing []model.Alert, now time.Time) {
	current := supply.FindUnread(existing, candidate)

	switch supply.Reconcile(current, candidate) {
	case supply.ActionNone:
		return
	case supply.ActionRefresh:
		if err := uc.alerts.MarkRead(ctx, current.ID); err != nil {
			uc.logger.Error("failed to supersede alert",
				zap.String("company_id", companyID),
				zap.String("alert_id", current.ID),
				zap.Error(err),
			)
			return
		}
	case supply.ActionCreate:
	}

	alert := &model.Alert{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Type:          candidate.Type,
		Title:         candidate.Title,
		Message:       candidate.Message,
		Severity:      candidate.Severity,
		ResourceID:    candidate.ResourceID,
		ResourceType:  candidate.ResourceType,
		DaysRemaining: candidate.DaysRemaining,
		CreatedAt:     now,
	}
	if err := uc.alerts.Create(ctx, alert); err != nil {
		uc.logger.Error("failed to create alert",
			zap.String("company_id", companyID),
			zap.String("type", candidate.Type),
			zap.String("resource_id", candidate.ResourceID),
			zap.Error(err),
		)
	}
}

func (uc *supplyUseCase) GenerateAlertsAll(ctx context.Context) error {
	companies, err := uc.companies.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}

	for _, company := range companies {
		if err := uc.GenerateAlerts(ctx, company.ID); err != nil {
			uc.logger.Error("alert generation failed for company",
				zap.String("company_id", company.ID),
				zap.Error(err),
			)
			continue
		}
	}
	return nil
}
