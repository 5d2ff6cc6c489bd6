package api

import (
	"net/http"
	"strconv"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/lifecycle"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

// SolvedHandler handles matching and claim tracking.
type SolvedHandler struct {
	Service *lifecycle.Service
}

type matchRequest struct {
	LostID    int64  `json:"lostId"`
	FoundID   int64  `json:"foundId"`
	ClaimedBy string `json:"claimedBy"`
}

type claimRequest struct {
	ClaimedBy string `json:"claimedBy"`
}

// Match handles POST /api/solved.
func (h *SolvedHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.MatchItems(r.Context(), req.LostID, req.FoundID, req.ClaimedBy)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, rec)
}

// List handles GET /api/solved. ?claimed=true|false filters by claim state.
func (h *SolvedHandler) List(w http.ResponseWriter, r *http.Request) {
	var claimed *bool
	if v := r.URL.Query().Get("claimed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "claimed must be true or false")
			return
		}
		claimed = &b
	}

	records, err := h.Service.ListSolved(r.Context(), claimed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if records == nil {
		records = []model.SolvedRecord{}
	}
	jsonResponse(w, http.StatusOK, records)
}

// Claim handles POST /api/solved/{id}/claim.
func (h *SolvedHandler) Claim(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid solved id")
		return
	}

	var req claimRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.MarkClaimed(r.Context(), id, req.ClaimedBy)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, rec)
}
