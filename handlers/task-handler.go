package handlers

import (
	"encoding/json"
	"net/http"

	"projectdesk/middleware"
	"projectdesk/models"
	"projectdesk/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	UserID    string             `json:"userID"`
	ProjectID string             `json:"projectID"`
	TaskData  services.TaskInput `json:"taskData"`
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.UserID != middleware.AuthUserID(r) {
		writeMessage(w, http.StatusForbidden, "Access forbidden: token does not match user")
		return
	}

	task, err := h.service.CreateTask(r.Context(), req.UserID, req.ProjectID, req.TaskData)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tasks, err := h.service.GetTasks(r.Context(), vars["userID"], vars["projectID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	task, err := h.service.GetTask(r.Context(), vars["userID"], vars["projectID"], vars["taskID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, "Task title updated successfully", func(vars map[string]string, body map[string]string) (*models.Task, error) {
		return h.service.UpdateTitle(r.Context(), vars["userID"], vars["projectID"], vars["taskID"], body["title"])
	})
}

func (h *TaskHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, "Task description updated successfully", func(vars map[string]string, body map[string]string) (*models.Task, error) {
		return h.service.UpdateDescription(r.Context(), vars["userID"], vars["projectID"], vars["taskID"], body["description"])
	})
}

func (h *TaskHandler) UpdateAssignTo(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, "Task assignment updated successfully", func(vars map[string]string, body map[string]string) (*models.Task, error) {
		return h.service.UpdateAssignTo(r.Context(), vars["userID"], vars["projectID"], vars["taskID"], body["assignTo"])
	})
}

func (h *TaskHandler) UpdateStartDate(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, "Task start date updated successfully", func(vars map[string]string, body map[string]string) (*models.Task, error) {
		return h.service.UpdateStartDate(r.Context(), vars["userID"], vars["projectID"], vars["taskID"], body["startDate"])
	})
}

func (h *TaskHandler) UpdateEndDate(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, "Task end date updated successfully", func(vars map[string]string, body map[string]string) (*models.Task, error) {
		return h.service.UpdateEndDate(r.Context(), vars["userID"], vars["projectID"], vars["taskID"], body["endDate"])
	})
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, "Task status updated successfully", func(vars map[string]string, body map[string]string) (*models.Task, error) {
		return h.service.UpdateStatus(r.Context(), vars["userID"], vars["projectID"], vars["taskID"], body["status"])
	})
}

type legacyStatusRequest struct {
	UserID    string `json:"userID"`
	ProjectID string `json:"projectID"`
	TaskID    string `json:"taskID"`
	Status    string `json:"status"`
}

// UpdateStatusLegacy keeps the body-addressed /task/update-status route the
// older clients still call.
func (h *TaskHandler) UpdateStatusLegacy(w http.ResponseWriter, r *http.Request) {
	var req legacyStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.UserID != middleware.AuthUserID(r) {
		writeMessage(w, http.StatusForbidden, "Access forbidden: token does not match user")
		return
	}

	task, err := h.service.UpdateStatus(r.Context(), req.UserID, req.ProjectID, req.TaskID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"msg": "Task status updated successfully", "task": task})
}

type legacyUpdateRequest struct {
	UserID    string              `json:"userID"`
	ProjectID string              `json:"projectID"`
	TaskID    string              `json:"taskID"`
	TaskData  services.TaskUpdate `json:"taskData"`
}

// UpdateTaskLegacy keeps the body-addressed /task/update-task route. The
// payload is applied as independent sequential per-field updates.
func (h *TaskHandler) UpdateTaskLegacy(w http.ResponseWriter, r *http.Request) {
	var req legacyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.UserID != middleware.AuthUserID(r) {
		writeMessage(w, http.StatusForbidden, "Access forbidden: token does not match user")
		return
	}

	task, err := h.service.ApplyUpdate(r.Context(), req.UserID, req.ProjectID, req.TaskID, req.TaskData)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"msg": "Task updated successfully", "task": task})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.service.DeleteTask(r.Context(), vars["userID"], vars["projectID"], vars["taskID"]); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Task deleted successfully")
}

func (h *TaskHandler) updateField(w http.ResponseWriter, r *http.Request, msg string, apply func(map[string]string, map[string]string) (*models.Task, error)) {
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := apply(mux.Vars(r), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"msg": msg, "task": task})
}
