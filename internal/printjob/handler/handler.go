package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/auth"
	"github.com/printfleet/supply-service/internal/pkg/httputil"
	"github.com/printfleet/supply-service/internal/pkg/logger"
	"github.com/printfleet/supply-service/internal/printjob"
	"github.com/printfleet/supply-service/internal/printjob/usecase"
)

type PrintJobHandler struct {
	uc     printjob.UseCase
	logger logger.Logger
}

func NewPrintJobHandler(uc printjob.UseCase, log logger.Logger) *PrintJobHandler {
	return &PrintJobHandler{uc: uc, logger: log}
}

func (h *PrintJobHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/print-jobs", h.ListJobs)
	mux.HandleFunc("POST /v1/print-jobs", h.RecordJob)
}

type recordJobRequest struct {
	PrinterID    *string    `json:"printer_id"`
	PaperTypeID  *string    `json:"paper_type_id"`
	DocumentName *string    `json:"document_name"`
	PageCount    int        `json:"page_count"`
	ColorMode    string     `json:"color_mode"`
	PrintedAt    *time.Time `json:"printed_at"`
}

func (h *PrintJobHandler) RecordJob(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())

	var req recordJobRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	input := &printjob.RecordJobInput{
		CompanyID:    companyID,
		PrinterID:    req.PrinterID,
		PaperTypeID:  req.PaperTypeID,
		DocumentName: req.DocumentName,
		PageCount:    req.PageCount,
		ColorMode:    req.ColorMode,
	}
	if req.PrintedAt != nil {
		input.PrintedAt = *req.PrintedAt
	}

	job, err := h.uc.RecordJob(r.Context(), input)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidColorMode) || errors.Is(err, usecase.ErrInvalidPageCount) {
			httputil.WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		h.logger.Error("failed to record print job", zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, job)
}

func (h *PrintJobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
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

	jobs, total, err := h.uc.ListJobs(r.Context(), &printjob.Filters{
		CompanyID: companyID,
		PrinterID: q.Get("printer_id"),
		ColorMode: q.Get("color_mode"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		h.logger.Error("failed to list print jobs", zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": jobs,
		"total": total,
	})
}
