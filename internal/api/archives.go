package api

import (
	"net/http"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/lifecycle"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

// ArchivesHandler handles the archive and donation tables.
type ArchivesHandler struct {
	Service *lifecycle.Service
}

type donateRequest struct {
	IDs []int64 `json:"ids"`
}

type restoreResponse struct {
	Restored bool        `json:"restored"`
	Table    model.Table `json:"table"`
	Item     *model.Item `json:"item"`
}

// List handles GET /api/archives.
func (h *ArchivesHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.ListArchive(r.Context(), model.Reason(r.URL.Query().Get("reason")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if records == nil {
		records = []model.ArchiveRecord{}
	}
	jsonResponse(w, http.StatusOK, records)
}

// Restore handles POST /api/archives/{id}/restore.
func (h *ArchivesHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid archive id")
		return
	}

	item, err := h.Service.Restore(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, restoreResponse{Restored: true, Table: item.Table, Item: item})
}

// Donate handles POST /api/archives/donate.
func (h *ArchivesHandler) Donate(w http.ResponseWriter, r *http.Request) {
	var req donateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.Service.DonateBatch(r.Context(), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// ListDonations handles GET /api/donations.
func (h *ArchivesHandler) ListDonations(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.ListDonations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if records == nil {
		records = []model.DonationRecord{}
	}
	jsonResponse(w, http.StatusOK, records)
}

// PurgeDonation handles DELETE /api/donations/{id}.
func (h *ArchivesHandler) PurgeDonation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid donation id")
		return
	}

	if err := h.Service.PurgeDonation(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "donation removed"})
}

// RestoreDonation handles POST /api/donations/{id}/restore, which always
// fails: donation is final.
func (h *ArchivesHandler) RestoreDonation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid donation id")
		return
	}
	writeError(w, r, h.Service.RestoreDonation(r.Context(), id))
}
