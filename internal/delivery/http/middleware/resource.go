package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"eventhorizon/internal/delivery/http/helpers"
	"eventhorizon/internal/domain"
)

const resourceKey contextKey = "resource"

// SetResource returns a context with the loaded resource set. Used by the
// resource loader middleware and by tests.
func SetResource(ctx context.Context, res domain.Resource) context.Context {
	return context.WithValue(ctx, resourceKey, res)
}

// ResourceFromContext returns the resource loaded earlier in the chain, if
// present.
func ResourceFromContext(ctx context.Context) (domain.Resource, bool) {
	res, ok := ctx.Value(resourceKey).(domain.Resource)
	return res, ok
}

// ResourceFetcher fetches a single document by ID.
type ResourceFetcher func(ctx context.Context, id string) (domain.Resource, error)

// LoadResource returns a wrapper that reads the named path parameter, fetches
// the document, and stashes it in the request context for downstream
// handlers. A missing document terminates the chain with 404; nothing after
// the loader runs.
func LoadResource(fetch ResourceFetcher, param string, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id := r.PathValue(param)
			if id == "" {
				helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+param)
				return
			}
			res, err := fetch(r.Context(), id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no document with id "+id)
					return
				}
				logger.ErrorContext(r.Context(), "resource load failed", "param", param, "id", id, "err", err)
				helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
				return
			}
			r = r.WithContext(SetResource(r.Context(), res))
			next(w, r)
		}
	}
}
