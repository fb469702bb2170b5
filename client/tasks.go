package client

import (
	"context"
	"fmt"
	"net/http"
)

// TaskData is the create payload.
type TaskData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignTo    string `json:"assignTo"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      string `json:"status,omitempty"`
}

// TaskUpdate carries only the fields being changed.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	AssignTo    *string `json:"assignTo,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (a *API) CreateTask(ctx context.Context, userID, projectID string, data TaskData) (*Task, error) {
	var task Task
	err := a.do(ctx, http.MethodPost, "/task/create", map[string]interface{}{
		"userID":    userID,
		"projectID": projectID,
		"taskData":  data,
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (a *API) GetTasks(ctx context.Context, userID, projectID string) ([]Task, error) {
	var tasks []Task
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/task/%s/projects/%s/tasks", userID, projectID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (a *API) GetTask(ctx context.Context, userID, projectID, taskID string) (*Task, error) {
	var task Task
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/task/%s/projects/%s/tasks/%s", userID, projectID, taskID), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

type taskEnvelope struct {
	Msg  string `json:"msg"`
	Task Task   `json:"task"`
}

func (a *API) updateTaskField(ctx context.Context, userID, projectID, taskID, field string, body map[string]string) (*Task, error) {
	var env taskEnvelope
	path := fmt.Sprintf("/task/%s/projects/%s/tasks/%s/%s", userID, projectID, taskID, field)
	if err := a.do(ctx, http.MethodPut, path, body, &env); err != nil {
		return nil, err
	}
	return &env.Task, nil
}

func (a *API) UpdateTaskTitle(ctx context.Context, userID, projectID, taskID, title string) (*Task, error) {
	return a.updateTaskField(ctx, userID, projectID, taskID, "title", map[string]string{"title": title})
}

func (a *API) UpdateTaskDescription(ctx context.Context, userID, projectID, taskID, description string) (*Task, error) {
	return a.updateTaskField(ctx, userID, projectID, taskID, "description", map[string]string{"description": description})
}

func (a *API) UpdateTaskAssignTo(ctx context.Context, userID, projectID, taskID, assignTo string) (*Task, error) {
	return a.updateTaskField(ctx, userID, projectID, taskID, "assign", map[string]string{"assignTo": assignTo})
}

func (a *API) UpdateTaskStartDate(ctx context.Context, userID, projectID, taskID, startDate string) (*Task, error) {
	return a.updateTaskField(ctx, userID, projectID, taskID, "start-date", map[string]string{"startDate": startDate})
}

func (a *API) UpdateTaskEndDate(ctx context.Context, userID, projectID, taskID, endDate string) (*Task, error) {
	return a.updateTaskField(ctx, userID, projectID, taskID, "end-date", map[string]string{"endDate": endDate})
}

// UpdateTaskStatus tries the canonical per-task route first and falls back to
// the legacy body-addressed one on 404. Route-shape defensive coding kept for
// older server deployments.
func (a *API) UpdateTaskStatus(ctx context.Context, userID, projectID, taskID, status string) (*Task, error) {
	task, err := a.updateTaskField(ctx, userID, projectID, taskID, "status", map[string]string{"status": status})
	if err == nil {
		return task, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	var env taskEnvelope
	if err := a.do(ctx, http.MethodPut, "/task/update-status", map[string]string{
		"userID":    userID,
		"projectID": projectID,
		"taskID":    taskID,
		"status":    status,
	}, &env); err != nil {
		return nil, err
	}
	return &env.Task, nil
}

// UpdateTask tries the legacy multi-field route and, when the server does not
// have it, decomposes into individual per-field calls.
func (a *API) UpdateTask(ctx context.Context, userID, projectID, taskID string, update TaskUpdate) (*Task, error) {
	var env taskEnvelope
	err := a.do(ctx, http.MethodPut, "/task/update-task", map[string]interface{}{
		"userID":    userID,
		"projectID": projectID,
		"taskID":    taskID,
		"taskData":  update,
	}, &env)
	if err == nil {
		return &env.Task, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	var task *Task
	step := func(f func() (*Task, error)) error {
		t, stepErr := f()
		if stepErr != nil {
			return stepErr
		}
		task = t
		return nil
	}

	if update.Title != nil {
		if err := step(func() (*Task, error) { return a.UpdateTaskTitle(ctx, userID, projectID, taskID, *update.Title) }); err != nil {
			return nil, err
		}
	}
	if update.Description != nil {
		if err := step(func() (*Task, error) {
			return a.UpdateTaskDescription(ctx, userID, projectID, taskID, *update.Description)
		}); err != nil {
			return nil, err
		}
	}
	if update.AssignTo != nil {
		if err := step(func() (*Task, error) { return a.UpdateTaskAssignTo(ctx, userID, projectID, taskID, *update.AssignTo) }); err != nil {
			return nil, err
		}
	}
	if update.StartDate != nil {
		if err := step(func() (*Task, error) { return a.UpdateTaskStartDate(ctx, userID, projectID, taskID, *update.StartDate) }); err != nil {
			return nil, err
		}
	}
	if update.EndDate != nil {
		if err := step(func() (*Task, error) { return a.UpdateTaskEndDate(ctx, userID, projectID, taskID, *update.EndDate) }); err != nil {
			return nil, err
		}
	}
	if update.Status != nil {
		if err := step(func() (*Task, error) { return a.UpdateTaskStatus(ctx, userID, projectID, taskID, *update.Status) }); err != nil {
			return nil, err
		}
	}

	if task == nil {
		return a.GetTask(ctx, userID, projectID, taskID)
	}
	return task, nil
}

func (a *API) DeleteTask(ctx context.Context, userID, projectID, taskID string) error {
	return a.do(ctx, http.MethodDelete, fmt.Sprintf("/task/%s/projects/%s/tasks/%s", userID, projectID, taskID), nil, nil)
}
