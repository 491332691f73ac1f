// internal/handler/files.go
package handler

import (
	"net/http"
	"strings"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/storage"
	"github.com/go-chi/chi/v5"
)

// FilesHandler streams stored objects. QR tags are served from here so
// the printed code keeps working when the storage backend changes.
type FilesHandler struct {
	store storage.Store
}

func NewFilesHandler(store storage.Store) *FilesHandler {
	return &FilesHandler{store: store}
}

var allowedPrefixes = map[string]bool{
	"qr":       true,
	"pictures": true,
}

func (h *FilesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{prefix}/{key}", h.handleRead)
	return r
}

func (h *FilesHandler) handleRead(w http.ResponseWriter, r *http.Request) {
	prefix := chi.URLParam(r, "prefix")
	key := chi.URLParam(r, "key")
	if !allowedPrefixes[prefix] || strings.Contains(key, "/") || strings.Contains(key, "..") {
		renderError(w, domain.ErrNotFound)
		return
	}

	data, err := h.store.Read(r.Context(), prefix, key)
	if err != nil {
		renderError(w, domain.ErrNotFound)
		return
	}

	contentType := "application/octet-stream"
	if strings.HasSuffix(key, ".png") {
		contentType = "image/png"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
