package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/youngkeol/notion-blog/internal/httputil"
	"github.com/youngkeol/notion-blog/internal/logfields"
)

// Recovery middleware recovers from panics and returns a 500 error
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic recovered",
						"panic", err,
						"path", r.URL.Path,
						"method", r.Method,
						logfields.RequestID(httputil.GetRequestID(r.Context())),
						"stack", string(debug.Stack()),
					)

					httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
