package middleware

import (
	"log/slog"
	"net/http"

	"eventhorizon/internal/delivery/http/helpers"
	"eventhorizon/internal/domain"
)

// RequireOwner returns a wrapper that rejects callers who do not own the
// resource loaded earlier in the chain. Admins bypass the check. For
// event-scoped resources the owner of the parent event is also allowed; that
// fallback requires a secondary event lookup, so the event repository is a
// dependency here. A denial writes 403 and never calls next.
//
// RequireOwner must run after RequireAuth and LoadResource; a chain wired
// without them is a programming error and fails closed with 500.
func RequireOwner(events domain.EventRepository, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
				return
			}
			resource, ok := ResourceFromContext(r.Context())
			if !ok {
				logger.ErrorContext(r.Context(), "ownership check without loaded resource", "path", r.URL.Path)
				helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
				return
			}

			if identity.Role == domain.RoleAdmin || resource.OwnerID() == identity.ID {
				next(w, r)
				return
			}

			// A lecture may be managed by the owner of its parent event even
			// if another lecturer authored it.
			if scoped, ok := resource.(domain.EventScoped); ok {
				event, err := events.GetByID(r.Context(), scoped.ParentEventID())
				if err == nil && event.OwnerID() == identity.ID {
					next(w, r)
					return
				}
			}

			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden,
				"you have no permission to access this resource")
		}
	}
}
