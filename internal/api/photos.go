package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/imaging"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/photostore"
)

// PhotosPath is the URL prefix photos are served under.
const PhotosPath = "/api/photos/"

// PhotosHandler handles found-item photo uploads.
type PhotosHandler struct {
	Photos photostore.Store
}

type uploadResponse struct {
	PhotoURL string `json:"photoUrl"`
	Key      string `json:"key"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Upload handles POST /api/photos. The multipart field is "photo".
func (h *PhotosHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Leave room for multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)

	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusRequestEntityTooLarge, "photo too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	switch {
	case errors.Is(err, imaging.ErrTooLarge):
		jsonError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	case errors.Is(err, imaging.ErrUnsupported):
		jsonError(w, http.StatusBadRequest, "photo must be JPEG, PNG, or WebP")
		return
	case err != nil:
		slog.Error("failed to process photo", "error", err)
		jsonError(w, http.StatusBadRequest, "could not decode photo")
		return
	}

	key, err := h.Photos.Save(r.Context(), photo.MIME, bytes.NewReader(photo.Data))
	if err != nil {
		slog.Error("failed to store photo", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	slog.Info("photo stored", "key", key, "width", photo.Width, "height", photo.Height)
	jsonResponse(w, http.StatusCreated, uploadResponse{
		PhotoURL: PhotosPath + key,
		Key:      key,
		Width:    photo.Width,
		Height:   photo.Height,
	})
}

// Get handles GET /api/photos/{key}.
func (h *PhotosHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := photostore.ValidateKey(key); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid photo key")
		return
	}

	rc, mimeType, err := h.Photos.Get(r.Context(), key)
	if errors.Is(err, photostore.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "photo not found")
		return
	}
	if err != nil {
		slog.Error("failed to read photo", "key", key, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to read photo")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("photo response interrupted", "key", key, "error", err)
	}
}
