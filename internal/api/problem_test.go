package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oakbuilt/renoplan/internal/store"
)

func TestMapStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"not configured", fmt.Errorf("airtable backend: %w", store.ErrNotConfigured), http.StatusServiceUnavailable},
		{"unavailable", fmt.Errorf("airtable request: %w: dial tcp", store.ErrUnavailable), http.StatusServiceUnavailable},
		{"rejected", &store.RequestError{Backend: "notion", Status: 429, Reason: "rate limited"}, http.StatusBadGateway},
		{"request error 404", &store.RequestError{Backend: "airtable", Status: 404, Reason: "gone"}, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/x", nil)

			MapStoreError(rec, req, tt.err)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q", ct)
			}

			var problem Problem
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if problem.Status != tt.want {
				t.Errorf("problem.Status = %d, want %d", problem.Status, tt.want)
			}
			if problem.Instance != "/api/v1/projects/x" {
				t.Errorf("problem.Instance = %q", problem.Instance)
			}
		})
	}
}

func TestInternalErrorsAreNotEchoed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/", nil)

	MapStoreError(rec, req, errors.New("pq: password authentication failed for user"))

	if body := rec.Body.String(); strings.Contains(body, "password") || strings.Contains(body, "pq:") {
		t.Errorf("response leaked internal error detail: %s", body)
	}
}
