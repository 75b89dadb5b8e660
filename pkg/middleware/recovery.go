package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "tablebot/pkg/errors"
	httputil "tablebot/pkg/http"
	"tablebot/pkg/logger"
)

// Recovery turns a handler panic into a 500 with the usual error body.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				log.Error("Panic recovered",
					"request_id", RequestID(r.Context()),
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				err := apperrors.Internal("handler panicked", fmt.Errorf("%v", rec))
				if writeErr := httputil.WriteError(w, err); writeErr != nil {
					log.Error("failed to write panic response", "error", writeErr)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
