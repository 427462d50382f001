package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/oakbuilt/renoplan/internal/store"
	"github.com/oakbuilt/renoplan/internal/validation"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

// problemTypes maps HTTP status codes to RFC 7807 type URIs and titles.
var problemTypes = map[int]struct {
	typeURI string
	title   string
}{
	http.StatusUnauthorized: {
		typeURI: "https://renoplan.dev/errors/unauthorized",
		title:   "Unauthorized",
	},
	http.StatusBadRequest: {
		typeURI: "https://renoplan.dev/errors/bad-request",
		title:   "Bad Request",
	},
	http.StatusNotFound: {
		typeURI: "https://renoplan.dev/errors/not-found",
		title:   "Not Found",
	},
	http.StatusInternalServerError: {
		typeURI: "https://renoplan.dev/errors/internal-error",
		title:   "Internal Server Error",
	},
	http.StatusUnprocessableEntity: {
		typeURI: "https://renoplan.dev/errors/validation-error",
		title:   "Validation Error",
	},
	http.StatusServiceUnavailable: {
		typeURI: "https://renoplan.dev/errors/service-unavailable",
		title:   "Service Unavailable",
	},
	http.StatusBadGateway: {
		typeURI: "https://renoplan.dev/errors/backend-rejected",
		title:   "Backend Rejected Request",
	},
}

// WriteProblem writes an RFC 7807 Problem Details response.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	pt, ok := problemTypes[status]
	if !ok {
		pt = struct {
			typeURI string
			title   string
		}{
			typeURI: "https://renoplan.dev/errors/unknown",
			title:   http.StatusText(status),
		}
	}

	p := Problem{
		Type:     pt.typeURI,
		Title:    pt.title,
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode problem response", "error", err)
	}
}

// ProblemWithErrors extends Problem with validation error details.
type ProblemWithErrors struct {
	Problem
	Errors []validation.ValidationError `json:"errors,omitempty"`
}

// WriteProblemWithErrors writes a 422 Problem Details response with field errors.
func WriteProblemWithErrors(w http.ResponseWriter, r *http.Request, detail string, errs []validation.ValidationError) {
	pt := problemTypes[http.StatusUnprocessableEntity]

	p := ProblemWithErrors{
		Problem: Problem{
			Type:     pt.typeURI,
			Title:    pt.title,
			Status:   http.StatusUnprocessableEntity,
			Detail:   detail,
			Instance: r.URL.Path,
		},
		Errors: errs,
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode problem response", "error", err)
	}
}

// MapStoreError converts domain errors to Problem Details responses.
// Transport failures and unconfigured backends map to 503, a rejection
// by the remote service to 502.
func MapStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteProblem(w, r, http.StatusNotFound, "Resource not found")
	case errors.Is(err, store.ErrNotConfigured):
		WriteProblem(w, r, http.StatusServiceUnavailable, "Backend is not configured")
	case errors.Is(err, store.ErrUnavailable):
		WriteProblem(w, r, http.StatusServiceUnavailable, "Backend is unreachable")
	case errors.Is(err, store.ErrRejected):
		WriteProblem(w, r, http.StatusBadGateway, "Backend rejected the request")
	default:
		// Never expose internal error details to client
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
	}
}
