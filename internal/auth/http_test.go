// ABOUTME: Tests for HTTP bearer authentication middleware
// ABOUTME: Covers token extraction, validation, and subject propagation

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestBearerMiddleware_ValidToken(t *testing.T) {
	issuer := newTestIssuer(t, "user-123", time.Hour)
	verifier := newTestVerifier(t)

	var gotSubject string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("Authorization", issuer.Headers()["Authorization"])
	rec := httptest.NewRecorder()

	BearerMiddleware(verifier)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if gotSubject != "user-123" {
		t.Errorf("subject = %q, want %q", gotSubject, "user-123")
	}
}

func TestBearerMiddleware_Rejects(t *testing.T) {
	verifier := newTestVerifier(t)

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{name: "missing header", header: "", wantMsg: "missing authorization header"},
		{name: "wrong scheme", header: "Basic abc", wantMsg: "invalid authorization header format"},
		{name: "empty token", header: "Bearer ", wantMsg: "empty token"},
		{name: "bad token", header: "Bearer not-a-jwt", wantMsg: "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			BearerMiddleware(verifier)(handler).ServeHTTP(rec, req)

			if called {
				t.Error("handler should not be called")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantMsg) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantMsg)
			}
		})
	}
}

func TestSubjectFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := SubjectFromContext(req.Context()); got != "" {
		t.Errorf("SubjectFromContext() = %q, want empty", got)
	}
}
