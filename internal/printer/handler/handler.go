package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/auth"
	"github.com/printfleet/supply-service/internal/pkg/httputil"
	"github.com/printfleet/supply-service/internal/pkg/logger"
	"github.com/printfleet/supply-service/internal/printer"
	"github.com/printfleet/supply-service/internal/printer/usecase"
)

type PrinterHandler struct {
	uc     printer.UseCase
	logger logger.Logger
}

func NewPrinterHandler(uc printer.UseCase, log logger.Logger) *PrinterHandler {
	return &PrinterHandler{uc: uc, logger: log}
}

func (h *PrinterHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/printers", h.ListPrinters)
	mux.HandleFunc("POST /v1/printers", h.CreatePrinter)
	mux.HandleFunc("GET /v1/printers/{id}", h.GetPrinter)
	mux.HandleFunc("PUT /v1/printers/{id}", h.UpdatePrinter)
	mux.HandleFunc("DELETE /v1/printers/{id}", h.DeletePrinter)
}

type printerRequest struct {
	Name         string  `json:"name"`
	Model        *string `json:"model"`
	SerialNumber *string `json:"serial_number"`
	Location     *string `json:"location"`
	IsColor      bool    `json:"is_color"`
	IsActive     *bool   `json:"is_active"`
}

func (h *PrinterHandler) CreatePrinter(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())

	var req printerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Name == "" {
		httputil.WriteJSONError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}

	p, err := h.uc.CreatePrinter(r.Context(), &printer.CreatePrinterInput{
		CompanyID:    companyID,
		Name:         req.Name,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Location:     req.Location,
		IsColor:      req.IsColor,
	})
	if err != nil {
		h.logger.Error("failed to create printer", zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *PrinterHandler) GetPrinter(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	id := r.PathValue("id")

	p, err := h.uc.GetPrinter(r.Context(), companyID, id)
	if err != nil {
		h.logger.Error("failed to get printer", zap.String("printer_id", id), zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	if p == nil {
		httputil.WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *PrinterHandler) ListPrinters(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())

	// ?q= switches to fleet search
	if q := r.URL.Query().Get("q"); q != "" {
		printers, err := h.uc.SearchPrinters(r.Context(), companyID, q)
		if err != nil {
			h.logger.Error("failed to search printers", zap.Error(err))
			httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, printers)
		return
	}

	printers, err := h.uc.ListPrinters(r.Context(), companyID)
	if err != nil {
		h.logger.Error("failed to list printers", zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, printers)
}

func (h *PrinterHandler) UpdatePrinter(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	id := r.PathValue("id")

	var req printerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Name == "" {
		httputil.WriteJSONError(w, http.StatusBadRequest, "validation_error", "name is required")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p, err := h.uc.UpdatePrinter(r.Context(), &printer.UpdatePrinterInput{
		CompanyID:    companyID,
		ID:           id,
		Name:         req.Name,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Location:     req.Location,
		IsColor:      req.IsColor,
		IsActive:     isActive,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrPrinterNotFound) {
			httputil.WriteJSONError(w, http.StatusNotFound, "not_found", "")
			return
		}
		h.logger.Error("failed to update printer", zap.String("printer_id", id), zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *PrinterHandler) DeletePrinter(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	id := r.PathValue("id")

	if err := h.uc.DeletePrinter(r.Context(), companyID, id); err != nil {
		h.logger.Error("failed to delete printer", zap.String("printer_id", id), zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
