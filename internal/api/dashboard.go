package api

import (
	"net/http"
	"time"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/lifecycle"
)

// DashboardHandler serves summary figures and operator maintenance.
type DashboardHandler struct {
	Service *lifecycle.Service
}

type sweepStatus struct {
	LastSweep *time.Time `json:"lastSweep"`
}

// Stats handles GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

// Sweep handles POST /api/admin/sweep.
func (h *DashboardHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Service.Sweep(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, rep)
}

// SweepStatus handles GET /api/admin/sweep.
func (h *DashboardHandler) SweepStatus(w http.ResponseWriter, r *http.Request) {
	last, err := h.Service.LastSweep(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var status sweepStatus
	if !last.IsZero() {
		status.LastSweep = &last
	}
	jsonResponse(w, http.StatusOK, status)
}
