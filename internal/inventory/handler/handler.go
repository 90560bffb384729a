package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/auth"
	"github.com/printfleet/supply-service/internal/inventory"
	"github.com/printfleet/supply-service/internal/inventory/dto"
	"github.com/printfleet/supply-service/internal/inventory/usecase"
	"github.com/printfleet/supply-service/internal/pkg/httputil"
	"github.com/printfleet/supply-service/internal/pkg/logger"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.Logger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, logger: log}
}

func (h *InventoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/paper-types", h.ListPaperTypes)
	mux.HandleFunc("POST /v1/paper-types", h.CreatePaperType)
	mux.HandleFunc("GET /v1/toner-cartridges", h.ListTonerCartridges)
	mux.HandleFunc("POST /v1/toner-cartridges", h.CreateTonerCartridge)
	mux.HandleFunc("POST /v1/inventory/adjust", h.AdjustStock)
	mux.HandleFunc("GET /v1/inventory/movements", h.ListMovements)
}

func (h *InventoryHandler) ListPaperTypes(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	items, err := h.uc.ListPaperTypes(r.Context(), companyID)
	if err != nil {
		h.logger.Error("failed to list paper types", zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

type createPaperTypeRequest struct {
	Name         string  `json:"name"`
	Size         *string `json:"size"`
	GramsPerSqm  *int    `json:"grams_per_sqm"`
	Stock        int     `json:"stock"`
	ReorderPoint int     `json:"reorder_point"`
}

func (h *InventoryHandler) CreatePaperType(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())

	var req createPaperTypeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Name == "" {
		httputil.WriteJSONError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}
	if req.Stock < 0 {
		httputil.WriteJSONError(w, http.StatusBadRequest, "validation_error", "stock must be >= 0")
		return
	}

	p, err := h.uc.CreatePaperType(r.Context(), &dto.CreatePaperTypeInput{
		CompanyID:    companyID,
		Name:         req.Name,
		Size:         req.Size,
		GramsPerSqm:  req.GramsPerSqm,
		Stock:        req.Stock,
		ReorderPoint: req.ReorderPoint,
	})
	if err != nil {
		h.logger.Error("failed to create paper type", zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *InventoryHandler) ListTonerCartridges(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	items, err := h.uc.ListTonerCartridges(r.Context(), companyID)
	if err != nil {
		h.logger.Error("failed to list toner cartridges", zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

type createTonerCartridgeRequest struct {
	Name         string `json:"name"`
	Color        string `json:"color"`
	Stock        int    `json:"stock"`
	ReorderPoint int    `json:"reorder_point"`
}

func (h *InventoryHandler) CreateTonerCartridge(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())

	var req createTonerCartridgeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Name == "" || req.Color == "" {
		httputil.WriteJSONError(w, http.StatusBadRequest, "validation_error", "name and color are required")
		return
	}

	t, err := h.uc.CreateTonerCartridge(r.Context(), &dto.CreateTonerCartridgeInput{
		CompanyID:    companyID,
		Name:         req.Name,
		Color:        req.Color,
		Stock:        req.Stock,
		ReorderPoint: req.ReorderPoint,
	})
	if err != nil {
		h.logger.Error("failed to create toner cartridge", zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, t)
}

type adjustStockRequest struct {
	ResourceType   string `json:"resource_type"`
	ResourceID     string `json:"resource_id"`
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason"`
}

func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())

	var req adjustStockRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ResourceID == "" {
		httputil.WriteJSONError(w, http.StatusBadRequest, "validation_error", "resource_id is required")
		return
	}
	if req.ResourceType != "paper" && req.ResourceType != "toner" {
		httputil.WriteJSONError(w, http.StatusBadRequest, "validation_error", "resource_type must be 'paper' or 'toner'")
		return
	}

	err := h.uc.AdjustStock(r.Context(), &dto.AdjustStockInput{
		CompanyID:      companyID,
		ResourceType:   req.ResourceType,
		ResourceID:     req.ResourceID,
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		ReferenceType:  "manual_adjustment",
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrResourceNotFound):
			httputil.WriteJSONError(w, http.StatusNotFound, "not_found", "")
		case errors.Is(err, usecase.ErrInsufficientStock):
			httputil.WriteJSONError(w, http.StatusConflict, "insufficient_stock", "")
		default:
			h.logger.Error("failed to adjust stock", zap.Error(err))
			httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
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

	items, total, err := h.uc.ListMovements(r.Context(), &dto.MovementFilters{
		CompanyID:    companyID,
		ResourceType: q.Get("resource_type"),
		ResourceID:   q.Get("resource_id"),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		h.logger.Error("failed to list movements", zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
	})
}
