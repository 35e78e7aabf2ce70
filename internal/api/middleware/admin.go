package middleware

import (
	"log/slog"
	"net/http"

	"github.com/hrsys/candidate-api/internal/api/shared"
)

// AdminHeaderName is the header that marks a request as administrative.
const AdminHeaderName = "X-ADMIN"

// adminHeaderValue is the only value accepted for the admin header.
const adminHeaderValue = "1"

// AdminOnly rejects requests that do not carry the admin marker header
// with the exact value "1". The response is the same 403 whether the
// header is missing or carries the wrong value, so callers cannot probe
// which case they hit.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(AdminHeaderName) != adminHeaderValue {
			slog.Warn("admin request rejected",
				slog.String("path", r.URL.Path),
				slog.String("method", r.Method),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("trace_id", shared.GetTraceID(r.Context())))
			shared.RespondWithError(w, r, http.StatusForbidden, "permission denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}
