package client

import (
	"context"
	"fmt"
	"net/http"
)

// ProjectData is the create payload; dates travel as strings.
type ProjectData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      string `json:"status,omitempty"`
}

func (a *API) CreateProject(ctx context.Context, userID string, data ProjectData) (*Project, error) {
	var project Project
	err := a.do(ctx, http.MethodPost, "/proj/create", map[string]interface{}{
		"userID":      userID,
		"projectData": data,
	}, &project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (a *API) GetProjects(ctx context.Context, userID string) ([]Project, error) {
	var projects []Project
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/proj/%s/projects", userID), nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (a *API) GetProject(ctx context.Context, userID, projectID string) (*Project, error) {
	var project Project
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/proj/%s/projects/%s", userID, projectID), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// The per-field updates return the {msg, project} envelope.

type projectEnvelope struct {
	Msg     string  `json:"msg"`
	Project Project `json:"project"`
}

func (a *API) updateProjectField(ctx context.Context, userID, projectID, field string, body map[string]string) (*Project, error) {
	var env projectEnvelope
	path := fmt.Sprintf("/proj/%s/projects/%s/%s", userID, projectID, field)
	if err := a.do(ctx, http.MethodPut, path, body, &env); err != nil {
		return nil, err
	}
	return &env.Project, nil
}

func (a *API) UpdateProjectTitle(ctx context.Context, userID, projectID, name string) (*Project, error) {
	return a.updateProjectField(ctx, userID, projectID, "title", map[string]string{"name": name})
}

func (a *API) UpdateProjectDescription(ctx context.Context, userID, projectID, description string) (*Project, error) {
	return a.updateProjectField(ctx, userID, projectID, "description", map[string]string{"description": description})
}

func (a *API) UpdateProjectStartDate(ctx context.Context, userID, projectID, startDate string) (*Project, error) {
	return a.updateProjectField(ctx, userID, projectID, "start-date", map[string]string{"startDate": startDate})
}

func (a *API) UpdateProjectEndDate(ctx context.Context, userID, projectID, endDate string) (*Project, error) {
	return a.updateProjectField(ctx, userID, projectID, "end-date", map[string]string{"endDate": endDate})
}

func (a *API) UpdateProjectStatus(ctx context.Context, userID, projectID, status string) (*Project, error) {
	return a.updateProjectField(ctx, userID, projectID, "status", map[string]string{"status": status})
}

func (a *API) DeleteProject(ctx context.Context, userID, projectID string) error {
	return a.do(ctx, http.MethodDelete, fmt.Sprintf("/proj/%s/projects/%s", userID, projectID), nil, nil)
}
