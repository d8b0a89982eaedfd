package server

import (
	"encoding/json"
	"net/http"

	"musicmanager/logger"
	"musicmanager/model"
)

// GetProjectsHandler returns all projects. The list payload is served
// from the catalog cache when present.
func (h *APIHandler) GetProjectsHandler(w http.ResponseWriter, r *http.Request) {
	if payload, ok := h.cache.GetProjectList(r.Context()); ok {
		writeRawJSON(w, http.StatusOK, payload)
		return
	}

	projects, err := h.projectRepo.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	payload, err := json.Marshal(projects)
	if err != nil {
		respondError(w, err)
		return
	}
	h.cache.SetProjectList(r.Context(), payload)
	writeRawJSON(w, http.StatusOK, payload)
}

// CreateProjectHandler stores a new project and returns it with its
// assigned id.
func (h *APIHandler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var project model.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// The id is assigned by the store; payload-supplied ids are ignored.
	project.ID = 0

	if err := h.projectRepo.Create(r.Context(), &project); err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidateProjects(r.Context())
	logger.Info("project created",
		logger.Int64("projectId", project.ID),
		logger.String("name", project.Name),
	)
	writeJSON(w, http.StatusCreated, project)
}

// UpdateProjectHandler merges the supplied fields into a project and
// returns the updated record.
func (h *APIHandler) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	var upd model.ProjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectRepo.Update(r.Context(), id, &upd)
	if err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidateProjects(r.Context())
	logger.Info("project updated", logger.Int64("projectId", id))
	writeJSON(w, http.StatusOK, project)
}

// DeleteProjectHandler removes a project and all its embedded songs.
func (h *APIHandler) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}

	if err := h.projectRepo.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	h.cache.InvalidateProjects(r.Context())
	logger.Info("project deleted", logger.Int64("projectId", id))
	w.WriteHeader(http.StatusNoContent)
}
