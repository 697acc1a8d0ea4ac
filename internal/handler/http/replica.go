package http

import (
	"io"
	"net/http"
	"time"

	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/utils"
	"github.com/MKhiriev/go-replica-sync/models"
)

func (h *Handler) states(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	states, err := h.services.ReplicaService.States(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Int("count", len(states)).Msg("states listed")
	utils.WriteJSON(w, models.StatesResponse{States: states, Length: len(states)}, http.StatusOK)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	relPath, err := pathParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body, err := h.services.ReplicaService.Open(r.Context(), relPath)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err = io.Copy(w, body); err != nil {
		// the status line is already sent; the client sees a short body
		logger.FromRequest(r).Err(err).Str("path", relPath).Msg("download interrupted")
	}
}

// upload stores the request body. contentHashing has already checked that
// the hash header is present and well-formed.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	relPath, err := pathParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	modTime, err := time.Parse(time.RFC3339, r.URL.Query().Get("mtime"))
	if err != nil {
		h.writeError(w, r, ErrInvalidModTime)
		return
	}

	state := models.FileState{
		Path:    relPath,
		Hash:    r.Header.Get(utils.ContentHashHeader),
		ModTime: modTime.UTC(),
	}
	if err = h.services.ReplicaService.Store(r.Context(), state, r.Body); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	relPath, err := pathParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.ReplicaService.Remove(r.Context(), relPath); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathParam(r *http.Request) (string, error) {
	relPath := r.URL.Query().Get("path")
	if relPath == "" {
		return "", ErrMissingPath
	}
	return relPath, nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Int("status", status).Str("path", r.URL.Query().Get("path")).Msg("replica request failed")

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	http.Error(w, message, status)
}
