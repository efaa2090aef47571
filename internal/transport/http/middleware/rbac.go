package middleware

import (
	"context"
	"net/http"

	"hrrecords/internal/requestctx"
	"hrrecords/internal/transport/http/api"
)

// PermissionStore decides whether a role holds a permission.
type PermissionStore interface {
	HasPermission(ctx context.Context, role, permission string) (bool, error)
}

// RequirePermission answers 401 without a caller and 403 when the caller's
// role lacks permission.
func RequirePermission(permission string, store PermissionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			user, ok := GetUser(ctx)
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(ctx))
				return
			}

			allowed, err := store.HasPermission(ctx, user.RoleName, permission)
			switch {
			case err != nil:
				requestctx.Logger(ctx).Error("permission check failed", "err", err, "role", user.RoleName, "permission", permission)
				api.Fail(w, http.StatusInternalServerError, "permission_error", "permission check failed", GetRequestID(ctx))
			case !allowed:
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", GetRequestID(ctx))
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
