package api

import (
	"log/slog"
	"net/http"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/intake"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/lifecycle"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

// ItemsHandler handles intake and the active lost/found tables.
type ItemsHandler struct {
	Service *lifecycle.Service
}

type archiveRequest struct {
	Reason string `json:"reason"`
}

// CreateFound handles POST /api/items/found. A found item dated a year or
// more in the past is archived immediately; the response says which.
func (h *ItemsHandler) CreateFound(w http.ResponseWriter, r *http.Request) {
	var sub intake.Submission
	if err := decodeJSON(r, &sub); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.Service.CreateFoundItem(r.Context(), sub)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, res)
}

// CreateLost handles POST /api/items/lost.
func (h *ItemsHandler) CreateLost(w http.ResponseWriter, r *http.Request) {
	var sub intake.Submission
	if err := decodeJSON(r, &sub); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.CreateLostItem(r.Context(), sub)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// List handles GET /api/items/{table}.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	table, err := model.ParseTable(r.PathValue("table"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.Service.ListActive(r.Context(), table, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Delete handles DELETE /api/items/{table}/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	table, err := model.ParseTable(r.PathValue("table"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Service.DeleteActive(r.Context(), table, id); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("item deleted", "user", operatorName(r.Context()), "table", table, "id", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Archive handles POST /api/items/{table}/{id}/archive. The reason defaults
// to the one matching the table.
func (h *ItemsHandler) Archive(w http.ResponseWriter, r *http.Request) {
	table, err := model.ParseTable(r.PathValue("table"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req archiveRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reason := model.ArchiveReasonFor(table)
	if req.Reason != "" {
		if reason, err = model.ParseReason(req.Reason); err != nil {
			writeError(w, r, err)
			return
		}
	}

	rec, err := h.Service.Archive(r.Context(), table, id, reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, rec)
}
