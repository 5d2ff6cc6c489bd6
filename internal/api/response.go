package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
	State  string   `json:"state,omitempty"`
}

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("error encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, errorResponse{Error: message})
}

// writeError maps a lifecycle error onto a status code. Store failures are
// logged in full and reported to the client without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		jsonResponse(w, http.StatusBadRequest, errorResponse{Error: ve.Message, Fields: ve.Fields})
	case errors.Is(err, model.ErrNotFound):
		jsonError(w, http.StatusNotFound, "item no longer available, please refresh and retry")
	case errors.Is(err, model.ErrConflict):
		state := model.StateOf(err)
		jsonResponse(w, http.StatusConflict, errorResponse{
			Error: conflictMessage(state),
			State: state,
		})
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

func conflictMessage(state string) string {
	switch state {
	case "claimed":
		return "item has already been claimed"
	case string(model.ReasonDonate):
		return "donated items cannot be restored"
	case "exists":
		return "username already exists"
	case "last admin":
		return "cannot delete the last admin"
	default:
		return "item is in state " + state
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be empty.
func decodeOptionalJSON(r *http.Request, target any) error {
	if err := decodeJSON(r, target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
