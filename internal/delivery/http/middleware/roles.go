package middleware

import (
	"net/http"

	"eventhorizon/internal/delivery/http/helpers"
	"eventhorizon/internal/domain"
)

// RequireRole returns a wrapper that rejects callers whose role is not in the
// permitted set. Admins bypass the check entirely. An empty set permits any
// authenticated identity; some routes use it purely to require a login.
// A denial writes 403 and never calls next.
func RequireRole(roles ...domain.Role) func(http.HandlerFunc) http.HandlerFunc {
	permitted := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		permitted[role] = struct{}{}
	}
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
				return
			}
			if identity.Role == domain.RoleAdmin {
				next(w, r)
				return
			}
			if len(permitted) == 0 {
				next(w, r)
				return
			}
			if _, ok := permitted[identity.Role]; !ok {
				helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden,
					"your role '"+string(identity.Role)+"' is not authorized to access this route")
				return
			}
			next(w, r)
		}
	}
}
