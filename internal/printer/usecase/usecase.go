package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/model"
	"github.com/printfleet/supply-service/internal/pkg/logger"
	"github.com/printfleet/supply-service/internal/pkg/search"
	"github.com/printfleet/supply-service/internal/printer"
)

var ErrPrinterNotFound = errors.New("printer not found")

const printerIndex = "printers"

type printerUseCase struct {
	repo   printer.Repository
	search *search.Client // nil when Elasticsearch is down; search degrades to listing
	logger logger.Logger
}

func NewPrinterUseCase(repo printer.Repository, searchClient *search.Client, log logger.Logger) printer.UseCase {
	return &printerUseCase{
		repo:   repo,
		search: searchClient,
		logger: log,
	}
}

func (uc *printerUseCase) CreatePrinter(ctx context.Context, input *printer.CreatePrinterInput) (*model.Printer, error) {
	now := time.Now()
	p := &model.Printer{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CompanyID:    input.CompanyID,
		Name:         input.Name,
		Model:        input.Model,
		SerialNumber: input.SerialNumber,
		Location:     input.Location,
		IsColor:      input.IsColor,
		IsActive:     true,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.indexPrinter(ctx, p)
	return p, nil
}

func (uc *printerUseCase) GetPrinter(ctx context.Context, companyID, id string) (*model.Printer, error) {
	return uc.repo.FindByID(ctx, companyID, id)
}

func (uc *printerUseCase) ListPrinters(ctx context.Context, companyID string) ([]model.Printer, error) {
	return uc.repo.FindAll(ctx, companyID)
}

func (uc *printerUseCase) UpdatePrinter(ctx context.Context, input *printer.UpdatePrinterInput) (*model.Printer, error) {
	p, err := uc.repo.FindByID(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPrinterNotFound
	}

	p.Name = input.Name
	p.Model = input.Model
	p.SerialNumber = input.SerialNumber
	p.Location = input.Location
	p.IsColor = input.IsColor
	p.IsActive = input.IsActive
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.indexPrinter(ctx, p)
	return p, nil
}

func (uc *printerUseCase) DeletePrinter(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	if uc.search != nil {
		if err := uc.search.DeleteDocument(ctx, printerIndex, id); err != nil {
			uc.logger.Warn("failed to remove printer from search index", zap.String("printer_id", id), zap.Error(err))
		}
	}
	return nil
}

func (uc *printerUseCase) SearchPrinters(ctx context.Context, companyID, query string) ([]model.Printer, error) {
	if uc.search == nil || query == "" {
		return uc.repo.FindAll(ctx, companyID)
	}

	esQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"company_id": companyID}},
				},
				"must": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":     query,
							"fields":    []string{"name^2", "model", "location", "serial_number"},
							"fuzziness": "AUTO",
						},
					},
				},
			},
		},
	}

	hits, err := uc.search.Search(ctx, printerIndex, esQuery)
	if err != nil {
		uc.logger.Warn("printer search failed, falling back to listing", zap.Error(err))
		return uc.repo.FindAll(ctx, companyID)
	}

	printers := make([]model.Printer, 0, len(hits))
	for _, hit := range hits {
		var p model.Printer
		if err := json.Unmarshal(hit, &p); err != nil {
			continue
		}
		printers = append(printers, p)
	}
	return printers, nil
}

// indexPrinter mirrors the row into Elasticsearch, best-effort.
func (uc *printerUseCase) indexPrinter(ctx context.Context, p *model.Printer) {
	if uc.search == nil {
		return
	}
	if err := uc.search.IndexDocument(ctx, printerIndex, p.ID, p); err != nil {
		uc.logger.Warn("failed to index printer", zap.String("printer_id", p.ID), zap.Error(err))
	}
}
