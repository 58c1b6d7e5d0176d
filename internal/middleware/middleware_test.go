package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abdul-muhaimin-toha/library-management/internal/middleware"
)

func TestJSONMiddleware(t *testing.T) {
	handler := middleware.JSONMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates an id", func(t *testing.T) {
		var seen string
		handler := middleware.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.RequestIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if seen == "" {
			t.Error("expected a generated request id in context")
		}
		if got := w.Header().Get("X-Request-ID"); got != seen {
			t.Errorf("header id = %q, context id = %q", got, seen)
		}
	})

	t.Run("keeps the client's id", func(t *testing.T) {
		handler := middleware.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		req.Header.Set("X-Request-ID", "client-id")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got != "client-id" {
			t.Errorf("X-Request-ID = %q, want client-id", got)
		}
	})
}
