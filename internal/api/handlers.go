package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/oakbuilt/renoplan/internal/media"
	"github.com/oakbuilt/renoplan/internal/status"
	"github.com/oakbuilt/renoplan/internal/store"
	"github.com/oakbuilt/renoplan/internal/types"
)

// AvailabilityChecker probes external services. Satisfied by
// *status.Checker; swappable in tests.
type AvailabilityChecker interface {
	Check(ctx context.Context) *status.Report
}

// Handler implements the API handlers.
type Handler struct {
	store    store.Store
	checker  AvailabilityChecker
	uploader media.Uploader
	backend  string
	apiKey   string
	version  string
}

// NewHandler creates a new Handler over the selected backend.
func NewHandler(s store.Store, c AvailabilityChecker, u media.Uploader, backend, apiKey, version string) *Handler {
	return &Handler{
		store:    s,
		checker:  c,
		uploader: u,
		backend:  backend,
		apiKey:   apiKey,
		version:  version,
	}
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Backend string `json:"backend"`
}

// Health returns the process health and the active backend.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Backend: h.backend,
	})
}

// Status handles GET /api/v1/status: the three-service availability report.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	report := h.checker.Check(r.Context())
	writeJSON(w, http.StatusOK, report)
}

// Search handles GET /api/v1/search?entity=task&q=drywall.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	entity := types.Entity(r.URL.Query().Get("entity"))
	term := r.URL.Query().Get("q")
	if term == "" {
		WriteProblem(w, r, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	known := false
	for _, e := range types.Entities {
		if e == entity {
			known = true
			break
		}
	}
	if !known {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Unknown entity %q", entity))
		return
	}

	results, err := h.store.Search(r.Context(), entity, term)
	if err != nil {
		slog.Error("search failed", "entity", entity, "error", err)
		MapStoreError(w, r, err)
		return
	}
	if results == nil {
		results = []store.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

// uploadResponse is the POST /media/{kind} payload.
type uploadResponse struct {
	Key string `json:"key"`
}

// mediaKinds are the accepted upload categories.
var mediaKinds = map[string]bool{
	"receipts":  true,
	"photos":    true,
	"documents": true,
}

// Upload handles POST /api/v1/media/{kind} with a multipart form whose
// "file" part holds the content.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	kind := pathParam(r, "kind")
	if !mediaKinds[kind] {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Unknown media kind %q", kind))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "Multipart form must include a file part")
		return
	}
	defer file.Close()

	key, err := h.uploader.Upload(r.Context(), kind, header.Filename,
		header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		if errors.Is(err, media.ErrNotConfigured) {
			WriteProblem(w, r, http.StatusServiceUnavailable, "Media storage is not configured")
			return
		}
		slog.Error("media upload failed", "kind", kind, "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{Key: key})
}

// mediaURLResponse is the GET /media/url payload.
type mediaURLResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expiresAt"`
}

// MediaURL handles GET /api/v1/media/url?key=... and returns a
// pre-signed download URL.
func (h *Handler) MediaURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		WriteProblem(w, r, http.StatusBadRequest, "Query parameter key is required")
		return
	}

	url, expiry, err := h.uploader.PresignedURL(r.Context(), key)
	if err != nil {
		if errors.Is(err, media.ErrNotConfigured) {
			WriteProblem(w, r, http.StatusServiceUnavailable, "Media storage is not configured")
			return
		}
		slog.Error("presign failed", "key", key, "error", err)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, mediaURLResponse{
		URL:       url,
		ExpiresAt: expiry.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return false
	}
	return true
}
