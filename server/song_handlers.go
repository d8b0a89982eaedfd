package server

import (
	"encoding/json"
	"net/http"

	"musicmanager/logger"
	"musicmanager/model"
)

// AddSongHandler appends a song to a project and returns it with its
// assigned song id.
func (h *APIHandler) AddSongHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectId")
	if err != nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	var song model.Song
	if err := json.NewDecoder(r.Body).Decode(&song); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// Identity fields are assigned by the repository.
	song.SongID = 0
	song.ProjectID = 0

	created, err := h.projectRepo.AddSong(r.Context(), projectID, &song)
	if err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidateProjects(r.Context())
	logger.Info("song added",
		logger.Int64("projectId", projectID),
		logger.Int64("songId", created.SongID),
		logger.String("name", created.Name),
	)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateSongHandler merges the supplied fields into one embedded song
// and returns the updated song.
func (h *APIHandler) UpdateSongHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectId")
	if err != nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	songID, err := pathID(r, "songId")
	if err != nil {
		writeError(w, http.StatusNotFound, "Song not found")
		return
	}

	var upd model.SongUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	song, err := h.projectRepo.UpdateSong(r.Context(), projectID, songID, &upd)
	if err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidateProjects(r.Context())
	logger.Info("song updated",
		logger.Int64("projectId", projectID),
		logger.Int64("songId", songID),
	)
	writeJSON(w, http.StatusOK, song)
}

// DeleteSongHandler removes one embedded song from a project.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectId")
	if err != nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	songID, err := pathID(r, "songId")
	if err != nil {
		writeError(w, http.StatusNotFound, "Song not found")
		return
	}

	if err := h.projectRepo.DeleteSong(r.Context(), projectID, songID); err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidateProjects(r.Context())
	logger.Info("song deleted",
		logger.Int64("projectId", projectID),
		logger.Int64("songId", songID),
	)
	w.WriteHeader(http.StatusNoContent)
}
