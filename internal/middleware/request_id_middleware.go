package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const ContextRequestID contextKey = "request_id"

// RequestIDMiddleware tags every request with an id, honoring one the
// client already sent.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := context.WithValue(r.Context(), ContextRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request id, or "" when the middleware
// did not run.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextRequestID).(string)
	return id
}
