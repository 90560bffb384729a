package auth

import (
	"context"
	"net/http"
)

type ctxKey int

const companyIDKey ctxKey = iota

// CompanyIDHeader carries the tenant identifier. Session/JWT validation is
// handled upstream; by the time a request reaches this service the header is
// trusted.
const CompanyIDHeader = "X-Company-Id"

func WithCompanyID(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, companyIDKey, companyID)
}

// GetCompanyID returns the tenant scoping the request, or "" when absent.
func GetCompanyID(ctx context.Context) string {
	if val, ok := ctx.Value(companyIDKey).(string); ok {
		return val
	}
	return ""
}

// CompanyIDFromRequest prefers the context value set by middleware and falls
// back to the raw header.
func CompanyIDFromRequest(r *http.Request) string {
	if id := GetCompanyID(r.Context()); id != "" {
		return id
	}
	return r.Header.Get(CompanyIDHeader)
}
