package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/worktime-calendar/internal/application"
)

type fakeSessionValidator struct {
	validToken string
}

func (f fakeSessionValidator) ValidateSession(_ context.Context, token string) error {
	if token == f.validToken && token != "" {
		return nil
	}
	return application.ErrUnauthorized
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireSession(fakeSessionValidator{validToken: "token-1"}, nil)(next)

	cases := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
	}{
		{name: "missing cookie", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", cookie: &http.Cookie{Name: sessionCookieName, Value: "bogus"}, wantStatus: http.StatusUnauthorized},
		{name: "valid token", cookie: &http.Cookie{Name: sessionCookieName, Value: "token-1"}, wantStatus: http.StatusOK},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/week?start=2025-06-02", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			if tc.wantStatus == http.StatusUnauthorized {
				if msg := decodeError(t, rec); msg != "Unauthorized" {
					t.Errorf("unexpected error message: %s", msg)
				}
			}
		})
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	t.Parallel()

	var sawLogger bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = LoggerFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequestLogger(nil)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !sawLogger {
		t.Error("expected request-scoped logger in context")
	}
}
