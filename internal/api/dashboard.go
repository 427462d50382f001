package api

import (
	_ "embed"
	"net/http"
)

//go:embed static/dashboard.html
var dashboardHTML []byte

// Dashboard serves the static presentation shell. It renders entirely
// client-side against the JSON API; no data is templated in.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(dashboardHTML)
}
