package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"insa-partnership-backend/internal/storage"
)

// AttachmentHandler handles attachment upload and download. The workflow
// engine only ever sees the keys this handler returns.
type AttachmentHandler struct {
	store    *storage.AttachmentStore
	maxBytes int64
}

// NewAttachmentHandler caps uploads at maxFileSizeMB megabytes. A zero or
// negative cap falls back to 25 MB.
func NewAttachmentHandler(store *storage.AttachmentStore, maxFileSizeMB int64) *AttachmentHandler {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 25
	}
	return &AttachmentHandler{store: store, maxBytes: maxFileSizeMB << 20}
}

type uploadResponse struct {
	Key         string `json:"key"`
	DownloadURL string `json:"download_url"`
	Size        int64  `json:"size"`
}

// Upload handles PUT /attachments?filename=...
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("filename")
	if fileName == "" {
		http.Error(w, "missing filename parameter", http.StatusBadRequest)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBytes)
	defer body.Close()

	key := h.store.NewKey(fileName)
	size, err := h.store.Save(key, body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("attachment exceeds the %d byte limit", h.maxBytes), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to save attachment", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		Key:         key,
		DownloadURL: h.store.DownloadURL(key),
		Size:        size,
	})
}

// Download handles GET /attachments/{key}.
func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	f, err := h.store.Open(key)
	if err != nil {
		http.Error(w, "attachment not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, f); err != nil {
		return
	}
}
