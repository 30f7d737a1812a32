package server

import (
	_ "embed"
	"net/http"
)

//go:embed ui/dashboard.html
var dashboardHTML []byte

// handleUI serves the embedded dashboard page (baked into the binary so
// the server has no runtime file dependency).
func (s *Server) handleUI(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/", "/index.html", "/dashboard.html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(dashboardHTML)
	default:
		http.NotFound(w, r)
	}
}
