package services

import (
	"context"

	"projectdesk/models"
	"projectdesk/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectInput carries the wire shape of a project create request. Dates stay
// strings until validated.
type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      string `json:"status"`
}

type ProjectService struct {
	Repo repositories.UserRepository
}

func NewProjectService(repo repositories.UserRepository) *ProjectService {
	return &ProjectService{Repo: repo}
}

// CreateProject appends a new project to the user's list and writes the
// aggregate back.
func (s *ProjectService) CreateProject(ctx context.Context, userID string, input ProjectInput) (*models.Project, error) {
	if input.Name == "" || input.StartDate == "" || input.EndDate == "" {
		return nil, models.NewValidationError("Missing required project data (name, startDate, endDate)")
	}
	startDate, err := models.ParseDate(input.StartDate)
	if err != nil {
		return nil, models.NewValidationError("Invalid start date format")
	}
	endDate, err := models.ParseDate(input.EndDate)
	if err != nil {
		return nil, models.NewValidationError("Invalid end date format")
	}

	status := models.ProjectStatus(input.Status)
	if status == "" {
		status = models.ProjectActive
	}
	if !models.ValidProjectStatus(status) {
		return nil, models.NewValidationError("Invalid status. Must be one of: active, completed, pending")
	}

	user, err := loadUser(ctx, s.Repo, userID)
	if err != nil {
		return nil, err
	}

	project := models.Project{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Description: input.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      status,
		Tasks:       []models.Task{},
	}
	user.Projects = append(user.Projects, project)
	if err := s.Repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjects lists all projects of the user.
func (s *ProjectService) GetProjects(ctx context.Context, userID string) ([]models.Project, error) {
	user, err := loadUser(ctx, s.Repo, userID)
	if err != nil {
		return nil, err
	}
	if user.Projects == nil {
		return []models.Project{}, nil
	}
	return user.Projects, nil
}

// GetProject fetches one project by the ownership chain.
func (s *ProjectService) GetProject(ctx context.Context, userID, projectID string) (*models.Project, error) {
	user, err := loadUser(ctx, s.Repo, userID)
	if err != nil {
		return nil, err
	}
	return loadProject(user, projectID)
}

// UpdateName sets the project name.
func (s *ProjectService) UpdateName(ctx context.Context, userID, projectID, name string) (*models.Project, error) {
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	return s.update(ctx, userID, projectID, func(p *models.Project) error {
		p.Name = name
		return nil
	})
}

// UpdateDescription sets the project description. Empty is allowed.
func (s *ProjectService) UpdateDescription(ctx context.Context, userID, projectID, description string) (*models.Project, error) {
	return s.update(ctx, userID, projectID, func(p *models.Project) error {
		p.Description = description
		return nil
	})
}

// UpdateStartDate changes the start date, keeping it before the stored end
// date.
func (s *ProjectService) UpdateStartDate(ctx context.Context, userID, projectID, startDate string) (*models.Project, error) {
	if startDate == "" {
		return nil, models.NewValidationError("Start date is required")
	}
	newStart, err := models.ParseDate(startDate)
	if err != nil {
		return nil, models.NewValidationError("Invalid start date format")
	}
	return s.update(ctx, userID, projectID, func(p *models.Project) error {
		if !p.EndDate.IsZero() && !newStart.Before(p.EndDate) {
			return models.NewValidationError("Start date must be before end date")
		}
		p.StartDate = newStart
		return nil
	})
}

// UpdateEndDate changes the end date, keeping it after the stored start date.
func (s *ProjectService) UpdateEndDate(ctx context.Context, userID, projectID, endDate string) (*models.Project, error) {
	if endDate == "" {
		return nil, models.NewValidationError("End date is required")
	}
	newEnd, err := models.ParseDate(endDate)
	if err != nil {
		return nil, models.NewValidationError("Invalid end date format")
	}
	return s.update(ctx, userID, projectID, func(p *models.Project) error {
		if !newEnd.After(p.StartDate) {
			return models.NewValidationError("End date must be after start date")
		}
		p.EndDate = newEnd
		return nil
	})
}

// UpdateStatus sets the project status after enum validation.
func (s *ProjectService) UpdateStatus(ctx context.Context, userID, projectID, status string) (*models.Project, error) {
	if status == "" {
		return nil, models.NewValidationError("Status is required")
	}
	if !models.ValidProjectStatus(models.ProjectStatus(status)) {
		return nil, models.NewValidationError("Invalid status. Must be one of: active, completed, pending")
	}
	return s.update(ctx, userID, projectID, func(p *models.Project) error {
		p.Status = models.ProjectStatus(status)
		return nil
	})
}

// DeleteProject removes the project, and with it every embedded task.
func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID string) error {
	user, err := loadUser(ctx, s.Repo, userID)
	if err != nil {
		return err
	}
	id, err := parseID(projectID, "project")
	if err != nil {
		return err
	}
	if !user.RemoveProject(id) {
		return models.NewNotFoundError("project")
	}
	return s.Repo.Save(ctx, user)
}

// update runs the single-field mutation against the located project and
// persists the whole aggregate.
func (s *ProjectService) update(ctx context.Context, userID, projectID string, mutate func(*models.Project) error) (*models.Project, error) {
	user, err := loadUser(ctx, s.Repo, userID)
	if err != nil {
		return nil, err
	}
	project, err := loadProject(user, projectID)
	if err != nil {
		return nil, err
	}
	if err := mutate(project); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return project, nil
}
