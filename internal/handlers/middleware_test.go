package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"readquest/internal/security"
)

func newTestMiddleware(t *testing.T) (*Middleware, *security.TokenManager) {
	t.Helper()
	tokens := security.NewTokenManager("test-secret", time.Hour)
	return NewMiddleware(tokens, "worker-token"), tokens
}

func TestRequireAuth(t *testing.T) {
	m, tokens := newTestMiddleware(t)

	token, err := tokens.Issue(42, 7, "user")
	if err != nil {
		t.Fatal(err)
	}

	var gotUserID int64
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = ClaimsFromContext(r.Context()).UserID
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"no header", "", 401},
		{"malformed header", "Token abc", 401},
		{"invalid token", "Bearer garbage", 401},
		{"valid token", "Bearer " + token, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/library", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler(recorder, req)

			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}
		})
	}

	if gotUserID != 42 {
		t.Errorf("claims user ID = %d, want 42", gotUserID)
	}
}

func TestRequireAdminRejectsRegularUsers(t *testing.T) {
	m, tokens := newTestMiddleware(t)

	handler := m.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	userToken, _ := tokens.Issue(1, 1, "user")
	adminToken, _ := tokens.Issue(2, 2, "admin")

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"user role", userToken, 403},
		{"admin role", adminToken, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/books", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			recorder := httptest.NewRecorder()

			handler(recorder, req)

			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireIngestToken(t *testing.T) {
	m, _ := newTestMiddleware(t)

	handler := m.RequireIngestToken(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"missing token", "", 401},
		{"wrong token", "other-token", 401},
		{"correct token", "worker-token", 201},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/internal/chapters", nil)
			if tt.token != "" {
				req.Header.Set("X-Ingest-Token", tt.token)
			}
			recorder := httptest.NewRecorder()

			handler(recorder, req)

			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireIngestTokenDisabledWithoutConfig(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	m := NewMiddleware(tokens, "")

	handler := m.RequireIngestToken(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest("POST", "/internal/chapters", nil)
	recorder := httptest.NewRecorder()
	handler(recorder, req)

	if recorder.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", recorder.Code)
	}
}
