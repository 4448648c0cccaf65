// HTTP audit middleware for the admin routes.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/matiasleandrokruk/folio/internal/api/ctxkeys"
	domainaudit "github.com/matiasleandrokruk/folio/internal/domain/audit"
)

// AuditLogger is the minimal contract used by AuditMiddleware.
// domainaudit.AuditService satisfies this interface.
type AuditLogger interface {
	LogWithDetails(
		ctx context.Context,
		actorType domainaudit.ActorType,
		actorID string,
		action string,
		details map[string]any,
		outcome domainaudit.Outcome,
	) error
}

const adminPrefix = "/api/v1/admin/"

// AuditMiddleware logs admin HTTP requests into audit_event.
// Expected order in router: AuthMiddleware -> AuditMiddleware -> handlers.
func AuditMiddleware(logger AuditLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logger == nil {
				next.ServeHTTP(w, r)
				return
			}

			subject, ok := ctxkeys.String(r.Context(), ctxkeys.Subject)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(recorder, r)

			_ = logger.LogWithDetails(
				r.Context(),
				domainaudit.ActorTypeAdmin,
				subject,
				domainaudit.ActionAdminRequest,
				map[string]any{
					"operation":   operationFromRequest(r.Method, r.URL.Path),
					"method":      r.Method,
					"path":        r.URL.Path,
					"status_code": recorder.statusCode,
					"duration_ms": time.Since(start).Milliseconds(),
				},
				outcomeFromStatus(recorder.statusCode),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func outcomeFromStatus(statusCode int) domainaudit.Outcome {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return domainaudit.OutcomeSuccess
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return domainaudit.OutcomeDenied
	default:
		return domainaudit.OutcomeError
	}
}

var adminOperations = map[string]string{
	"GET history":  "get_history",
	"DELETE cache": "clear_cache",
	"POST reload":  "reload_profile",
	"GET events":   "list_events",
}

// operationFromRequest names an admin request, e.g. DELETE /api/v1/admin/cache -> clear_cache.
func operationFromRequest(method, path string) string {
	fallback := strings.ToLower(method) + "_request"
	if !strings.HasPrefix(path, adminPrefix) {
		return fallback
	}
	resource, _, _ := strings.Cut(strings.TrimPrefix(path, adminPrefix), "/")
	if op, ok := adminOperations[method+" "+resource]; ok {
		return op
	}
	return fallback
}
