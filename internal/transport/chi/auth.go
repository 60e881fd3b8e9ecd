package chi

import (
	"context"
	"errors"
	"net/http"

	"github.com/haremir/mergenX/internal/domain"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type tenantCtxKey struct{}

// TenantResolver maps an API key to its tenant.
type TenantResolver interface {
	ResolveAPIKey(ctx context.Context, apiKey string) (domain.Tenant, error)
}

// TenantFromContext returns the tenant resolved by the auth middleware.
func TenantFromContext(ctx context.Context) (domain.Tenant, bool) {
	t, ok := ctx.Value(tenantCtxKey{}).(domain.Tenant)
	return t, ok
}

// contextWithTenant is used by the middleware and by handler tests.
func contextWithTenant(ctx context.Context, t domain.Tenant) context.Context {
	return context.WithValue(ctx, tenantCtxKey{}, t)
}

// TenantAuthMiddleware resolves the X-API-Key header to a tenant and injects
// it into the request context. The tenant scope of every downstream handler
// comes from here, never from the request payload.
func TenantAuthMiddleware(resolver TenantResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthenticated, "missing X-API-Key header")
				return
			}

			tenant, err := resolver.ResolveAPIKey(r.Context(), apiKey)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthenticated):
					writeError(w, http.StatusUnauthorized, codeUnauthenticated, "invalid api key")
				case errors.Is(err, domain.ErrTenantInactive):
					writeError(w, http.StatusForbidden, codeTenantInactive, "tenant is deactivated")
				default:
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithTenant(r.Context(), tenant)))
		})
	}
}
