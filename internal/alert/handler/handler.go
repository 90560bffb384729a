package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/alert"
	"github.com/printfleet/supply-service/internal/auth"
	"github.com/printfleet/supply-service/internal/pkg/httputil"
	"github.com/printfleet/supply-service/internal/pkg/logger"
)

type AlertHandler struct {
	repo   alert.Repository
	logger logger.Logger
}

func NewAlertHandler(repo alert.Repository, log logger.Logger) *AlertHandler {
	return &AlertHandler{repo: repo, logger: log}
}

func (h *AlertHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/alerts", h.ListAlerts)
	mux.HandleFunc("POST /v1/alerts/{id}/read", h.MarkRead)
}

func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
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

	items, total, err := h.repo.FindAll(r.Context(), &alert.Filters{
		CompanyID:  companyID,
		UnreadOnly: q.Get("unread") == "true",
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		h.logger.Error("failed to list alerts", zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
	})
}

func (h *AlertHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.WriteJSONError(w, http.StatusBadRequest, "validation_error", "alert id is required")
		return
	}
	if err := h.repo.MarkRead(r.Context(), id); err != nil {
		h.logger.Error("failed to mark alert read", zap.String("alert_id", id), zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
