package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"musicmanager/logger"
	"musicmanager/storage"
)

// mediaUploadResponse mirrors the contract the frontend relied on from
// its previous hosting provider: a durable URL plus, for audio, the
// duration in seconds.
type mediaUploadResponse struct {
	SecureURL         string   `json:"secure_url"`
	Duration          *float64 `json:"duration,omitempty"`
	DurationFormatted string   `json:"duration_formatted,omitempty"`
}

// UploadMediaHandler accepts a multipart upload (field "file", optional
// field "duration" in seconds as measured by the client) and stores it
// in the media bucket. A failed upload stores nothing, so no record
// ever ends up with a partial URL.
func (h *APIHandler) UploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	if h.media == nil {
		writeError(w, http.StatusServiceUnavailable, "Media storage not available")
		return
	}

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := h.media.ObjectName(header.Filename, contentType)
	url, err := h.media.Upload(r.Context(), objectName, file, header.Size, contentType)
	if err != nil {
		logger.Error("media upload failed",
			logger.String("object", objectName),
			logger.ErrorField(err),
		)
		writeError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	resp := mediaUploadResponse{SecureURL: url}
	if durationStr := r.FormValue("duration"); durationStr != "" {
		if seconds, err := strconv.ParseFloat(durationStr, 64); err == nil && seconds >= 0 {
			resp.Duration = &seconds
			resp.DurationFormatted = formatDuration(seconds)
		}
	}

	logger.Info("media uploaded",
		logger.String("object", objectName),
		logger.Int64("size", header.Size),
	)
	writeJSON(w, http.StatusCreated, resp)
}

// StaticMediaHandler serves stored objects back from the media bucket.
func (h *APIHandler) StaticMediaHandler(w http.ResponseWriter, r *http.Request) {
	if h.media == nil {
		writeError(w, http.StatusServiceUnavailable, "Media storage not available")
		return
	}

	objectName := strings.TrimPrefix(r.URL.Path, "/static/")
	object, err := h.media.Object(r.Context(), objectName)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer object.Close()

	w.Header().Set("Content-Type", storage.ContentTypeOf(objectName))
	w.Header().Set("Cache-Control", "public, max-age=31536000")

	if _, err := io.Copy(w, object); err != nil {
		logger.Error("failed to serve media object",
			logger.String("object", objectName),
			logger.ErrorField(err),
		)
	}
}

// formatDuration renders a duration in seconds as "M:SS", the format
// stored in song_duration and beat_length.
func formatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
