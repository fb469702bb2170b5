package handlers

import (
	"encoding/json"
	"net/http"

	"projectdesk/middleware"
	"projectdesk/models"
	"projectdesk/services"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	UserID      string                `json:"userID"`
	ProjectData services.ProjectInput `json:"projectData"`
}

// CreateProject is body-addressed, so the ownership check against the token
// subject happens here instead of in the middleware.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.UserID != middleware.AuthUserID(r) {
		writeMessage(w, http.StatusForbidden, "Access forbidden: token does not match user")
		return
	}

	project, err := h.service.CreateProject(r.Context(), req.UserID, req.ProjectData)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.GetProjects(r.Context(), mux.Vars(r)["userID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	project, err := h.service.GetProject(r.Context(), vars["userID"], vars["projectID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, "Project name updated successfully", func(vars map[string]string, body map[string]string) (*models.Project, error) {
		return h.service.UpdateName(r.Context(), vars["userID"], vars["projectID"], body["name"])
	})
}

func (h *ProjectHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, "Project description updated successfully", func(vars map[string]string, body map[string]string) (*models.Project, error) {
		return h.service.UpdateDescription(r.Context(), vars["userID"], vars["projectID"], body["description"])
	})
}

func (h *ProjectHandler) UpdateStartDate(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, "Project start date updated successfully", func(vars map[string]string, body map[string]string) (*models.Project, error) {
		return h.service.UpdateStartDate(r.Context(), vars["userID"], vars["projectID"], body["startDate"])
	})
}

func (h *ProjectHandler) UpdateEndDate(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, "Project end date updated successfully", func(vars map[string]string, body map[string]string) (*models.Project, error) {
		return h.service.UpdateEndDate(r.Context(), vars["userID"], vars["projectID"], body["endDate"])
	})
}

func (h *ProjectHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, "Project status updated successfully", func(vars map[string]string, body map[string]string) (*models.Project, error) {
		return h.service.UpdateStatus(r.Context(), vars["userID"], vars["projectID"], body["status"])
	})
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.service.DeleteProject(r.Context(), vars["userID"], vars["projectID"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Project deleted successfully")
}

// updateField decodes the one-field body every PUT route carries and wraps
// the updated project in the usual {msg, project} envelope.
func (h *ProjectHandler) updateField(w http.ResponseWriter, r *http.Request, msg string, apply func(map[string]string, map[string]string) (*models.Project, error)) {
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	project, err := apply(mux.Vars(r), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"msg": msg, "project": project})
}
