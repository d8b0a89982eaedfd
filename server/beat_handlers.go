package server

import (
	"encoding/json"
	"net/http"

	"musicmanager/logger"
	"musicmanager/model"
)

// GetBeatsHandler returns all beats. The list payload is served from
// the catalog cache when present.
func (h *APIHandler) GetBeatsHandler(w http.ResponseWriter, r *http.Request) {
	if payload, ok := h.cache.GetBeatList(r.Context()); ok {
		writeRawJSON(w, http.StatusOK, payload)
		return
	}

	beats, err := h.beatRepo.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	payload, err := json.Marshal(beats)
	if err != nil {
		respondError(w, err)
		return
	}
	h.cache.SetBeatList(r.Context(), payload)
	writeRawJSON(w, http.StatusOK, payload)
}

// CreateBeatHandler stores a new beat and returns it with its assigned
// id. Missing required fields yield 400.
func (h *APIHandler) CreateBeatHandler(w http.ResponseWriter, r *http.Request) {
	var beat model.Beat
	if err := json.NewDecoder(r.Body).Decode(&beat); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	beat.ID = 0

	if err := h.beatRepo.Create(r.Context(), &beat); err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidateBeats(r.Context())
	logger.Info("beat created",
		logger.Int64("beatId", beat.ID),
		logger.String("name", beat.Name),
	)
	writeJSON(w, http.StatusCreated, beat)
}

// UpdateBeatHandler merges the supplied fields into a beat and returns
// the updated record.
func (h *APIHandler) UpdateBeatHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "Beat not found")
		return
	}

	var upd model.BeatUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	beat, err := h.beatRepo.Update(r.Context(), id, &upd)
	if err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidateBeats(r.Context())
	logger.Info("beat updated", logger.Int64("beatId", id))
	writeJSON(w, http.StatusOK, beat)
}

// DeleteBeatHandler removes a beat.
func (h *APIHandler) DeleteBeatHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "Beat not found")
		return
	}

	if err := h.beatRepo.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidateBeats(r.Context())
	logger.Info("beat deleted", logger.Int64("beatId", id))
	w.WriteHeader(http.StatusNoContent)
}
