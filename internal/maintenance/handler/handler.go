package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/auth"
	"github.com/printfleet/supply-service/internal/maintenance"
	"github.com/printfleet/supply-service/internal/model"
	"github.com/printfleet/supply-service/internal/pkg/httputil"
	"github.com/printfleet/supply-service/internal/pkg/logger"
)

type MaintenanceHandler struct {
	repo   maintenance.Repository
	logger logger.Logger
}

func NewMaintenanceHandler(repo maintenance.Repository, log logger.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{repo: repo, logger: log}
}

func (h *MaintenanceHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/maintenance", h.ListRecords)
	mux.HandleFunc("POST /v1/maintenance", h.CreateRecord)
}

type createRecordRequest struct {
	PrinterID   string     `json:"printer_id"`
	Description string     `json:"description"`
	PerformedBy *string    `json:"performed_by"`
	PerformedAt *time.Time `json:"performed_at"`
}

func (h *MaintenanceHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())

	var req createRecordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.PrinterID == "" || req.Description == "" {
		httputil.WriteJSONError(w, http.StatusBadRequest, "validation_error", "printer_id and description are required")
		return
	}

	performedAt := time.Now()
	if req.PerformedAt != nil {
		performedAt = *req.PerformedAt
	}

	rec := &model.MaintenanceRecord{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		PrinterID:   req.PrinterID,
		Description: req.Description,
		PerformedBy: req.PerformedBy,
		PerformedAt: performedAt,
		CreatedAt:   time.Now(),
	}
	if err := h.repo.Create(r.Context(), rec); err != nil {
		h.logger.Error("failed to create maintenance record", zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, rec)
}

func (h *MaintenanceHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	items, total, err := h.repo.FindAll(r.Context(), &maintenance.Filters{
		CompanyID: companyID,
		PrinterID: q.Get("printer_id"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		h.logger.Error("failed to list maintenance records", zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
	})
}
