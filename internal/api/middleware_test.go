package api

import (
	"net/http"
	"testing"
)

func authedRequest(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestAuthRequiredWhenKeyConfigured(t *testing.T) {
	srv, _ := newTestServer(t, "secret-key")

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"wrong token", "nope", http.StatusUnauthorized},
		{"valid token", "secret-key", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := authedRequest(t, srv.URL+"/api/v1/projects/", tt.token)
			defer resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestHealthIsPublicDespiteAuth(t *testing.T) {
	srv, _ := newTestServer(t, "secret-key")

	resp := authedRequest(t, srv.URL+"/api/v1/health", "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200 without token", resp.StatusCode)
	}
}

func TestNoAuthWhenKeyEmpty(t *testing.T) {
	srv, _ := newTestServer(t, "")

	resp := authedRequest(t, srv.URL+"/api/v1/projects/", "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 with auth disabled", resp.StatusCode)
	}
}

func TestAuthFailureIsProblemJSON(t *testing.T) {
	srv, _ := newTestServer(t, "secret-key")

	resp := authedRequest(t, srv.URL+"/api/v1/projects/", "wrong")
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"valid", "Bearer abc123", "abc123"},
		{"lowercase scheme rejected", "bearer abc123", ""},
		{"basic rejected", "Basic abc123", ""},
		{"extra whitespace trimmed", "Bearer   abc123  ", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("extractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
