package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/auth"
	"github.com/printfleet/supply-service/internal/pkg/httputil"
	"github.com/printfleet/supply-service/internal/pkg/logger"
	"github.com/printfleet/supply-service/internal/supply"
)

type SupplyHandler struct {
	uc     supply.UseCase
	logger logger.Logger
}

func NewSupplyHandler(uc supply.UseCase, log logger.Logger) *SupplyHandler {
	return &SupplyHandler{uc: uc, logger: log}
}

func (h *SupplyHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/supply/projections", h.GetProjections)
	mux.HandleFunc("POST /v1/supply/alerts/generate", h.GenerateAlerts)
}

func (h *SupplyHandler) GetProjections(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		httputil.WriteJSONError(w, http.StatusUnauthorized, "missing_company", "")
		return
	}

	projections, err := h.uc.GetProjections(r.Context(), companyID)
	if err != nil {
		h.logger.Error("failed to compute projections", zap.String("company_id", companyID), zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "projection_failed", "")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, projections)

	// Alert generation rides along best-effort; its failure must never
	// surface on the read path.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := h.uc.GenerateAlerts(ctx, companyID); err != nil {
			h.logger.Error("background alert generation failed", zap.String("company_id", companyID), zap.Error(err))
		}
	}()
}

func (h *SupplyHandler) GenerateAlerts(w http.ResponseWriter, r *http.Request) {
	companyID := auth.GetCompanyID(r.Context())
	if companyID == "" {
		httputil.WriteJSONError(w, http.StatusUnauthorized, "missing_company", "")
		return
	}

	if err := h.uc.GenerateAlerts(r.Context(), companyID); err != nil {
		h.logger.Error("alert generation failed", zap.String("company_id", companyID), zap.Error(err))
		httputil.WriteJSONError(w, http.StatusInternalServerError, "alert_generation_failed", "")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
