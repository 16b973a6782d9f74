package middlewares

import (
	"net/http"

	httperrors "github.com/pondokdigital/pesantren-api/internal/http/errors"
	"github.com/pondokdigital/pesantren-api/internal/observability/logger"
)

// WithRecover catches panics and answers with a generic 500 instead of
// crashing the server. The panic value stays in the logs only.
func WithRecover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log := logger.From(r.Context())
					log.Error("panic recovered",
						logger.Op("recover"),
						logger.Path(r.URL.Path),
						logger.Any("panic", rec),
					)
					httperrors.WriteError(w, httperrors.ErrServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
