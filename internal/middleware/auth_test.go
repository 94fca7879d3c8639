package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBearerAuth(t *testing.T) {
	resolve := func(token string) (int64, bool) {
		if token == "good" {
			return 42, true
		}
		return 0, false
	}

	var gotID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := BearerAuth(resolve)(next)

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantCode   int
		wantID     int64
	}{
		{"auth routes skip the check", "/api/auth/login", "", http.StatusOK, 0},
		{"missing header", "/api/posts", "", http.StatusUnauthorized, 0},
		{"malformed header", "/api/posts", "Basic abc", http.StatusUnauthorized, 0},
		{"unknown token", "/api/posts", "Bearer bad", http.StatusUnauthorized, 0},
		{"valid token", "/api/posts", "Bearer good", http.StatusOK, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID = 0
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d; want %d", rec.Code, tt.wantCode)
			}
			if gotID != tt.wantID {
				t.Errorf("user id = %d; want %d", gotID, tt.wantID)
			}
		})
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if id := GetUserIDFromContext(req.Context()); id != 0 {
		t.Errorf("id = %d; want 0 for missing value", id)
	}
}
