package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/auth"
	"github.com/printfleet/supply-service/internal/pkg/httputil"
	"github.com/printfleet/supply-service/internal/pkg/logger"
)

type ctxKey int

const requestIDKey ctxKey = iota

func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, reqID)))
	})
}

func WithLogging(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)
		log.Info("http_request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sr.status),
			zap.Int("bytes", sr.bytes),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", RequestIDFromContext(r.Context())),
		)
	})
}

// WithTenant rejects requests without a company header and stores the tenant
// in the context for downstream handlers.
func WithTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID := r.Header.Get(auth.CompanyIDHeader)
		if companyID == "" {
			httputil.WriteJSONError(w, http.StatusUnauthorized, "missing_company", "X-Company-Id header is required")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithCompanyID(r.Context(), companyID)))
	})
}
