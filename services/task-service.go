package services

import (
	"context"

	"projectdesk/models"
	"projectdesk/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskInput carries the wire shape of a task create request.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignTo    string `json:"assignTo"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      string `json:"status"`
}

// TaskUpdate is the legacy multi-field update payload. Nil fields are left
// untouched; set fields apply as independent sequential updates.
type TaskUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssignTo    *string `json:"assignTo"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Status      *string `json:"status"`
}

type TaskService struct {
	Repo repositories.UserRepository
}

func NewTaskService(repo repositories.UserRepository) *TaskService {
	return &TaskService{Repo: repo}
}

// CreateTask appends a task to the project. Status defaults to to-do when
// omitted; dates must be ordered.
func (s *TaskService) CreateTask(ctx context.Context, userID, projectID string, input TaskInput) (*models.Task, error) {
	if input.Title == "" || input.StartDate == "" || input.EndDate == "" {
		return nil, models.NewValidationError("Missing required task data (title, startDate, endDate)")
	}
	startDate, err := models.ParseDate(input.StartDate)
	if err != nil {
		return nil, models.NewValidationError("Invalid start date format")
	}
	endDate, err := models.ParseDate(input.EndDate)
	if err != nil {
		return nil, models.NewValidationError("Invalid end date format")
	}
	if !startDate.Before(endDate) {
		return nil, models.NewValidationError("Start date must be before end date")
	}

	status := models.TaskStatus(input.Status)
	if status == "" {
		status = models.TaskToDo
	}
	if !models.ValidTaskStatus(status) {
		return nil, models.NewValidationError("Invalid status. Must be one of: to-do, in-progress, done, overdue")
	}

	user, err := loadUser(ctx, s.Repo, userID)
	if err != nil {
		return nil, err
	}
	project, err := loadProject(user, projectID)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Description: input.Description,
		AssignTo:    input.AssignTo,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      status,
	}
	project.Tasks = append(project.Tasks, task)
	if err := s.Repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTasks lists the tasks of one project.
func (s *TaskService) GetTasks(ctx context.Context, userID, projectID string) ([]models.Task, error) {
	user, err := loadUser(ctx, s.Repo, userID)
	if err != nil {
		return nil, err
	}
	project, err := loadProject(user, projectID)
	if err != nil {
		return nil, err
	}
	if project.Tasks == nil {
		return []models.Task{}, nil
	}
	return project.Tasks, nil
}

// GetTask fetches one task by the full ownership chain.
func (s *TaskService) GetTask(ctx context.Context, userID, projectID, taskID string) (*models.Task, error) {
	user, err := loadUser(ctx, s.Repo, userID)
	if err != nil {
		return nil, err
	}
	project, err := loadProject(user, projectID)
	if err != nil {
		return nil, err
	}
	return loadTask(project, taskID)
}

// UpdateTitle sets the task title.
func (s *TaskService) UpdateTitle(ctx context.Context, userID, projectID, taskID, title string) (*models.Task, error) {
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	return s.update(ctx, userID, projectID, taskID, func(t *models.Task) error {
		t.Title = title
		return nil
	})
}

// UpdateDescription sets the task description. Empty is allowed.
func (s *TaskService) UpdateDescription(ctx context.Context, userID, projectID, taskID, description string) (*models.Task, error) {
	return s.update(ctx, userID, projectID, taskID, func(t *models.Task) error {
		t.Description = description
		return nil
	})
}

// UpdateAssignTo sets the free-text assignee. Empty clears the assignment.
func (s *TaskService) UpdateAssignTo(ctx context.Context, userID, projectID, taskID, assignTo string) (*models.Task, error) {
	return s.update(ctx, userID, projectID, taskID, func(t *models.Task) error {
		t.AssignTo = assignTo
		return nil
	})
}

// UpdateStartDate changes the start date, keeping it before the stored end
// date.
func (s *TaskService) UpdateStartDate(ctx context.Context, userID, projectID, taskID, startDate string) (*models.Task, error) {
	if startDate == "" {
		return nil, models.NewValidationError("Start date is required")
	}
	newStart, err := models.ParseDate(startDate)
	if err != nil {
		return nil, models.NewValidationError("Invalid start date format")
	}
	return s.update(ctx, userID, projectID, taskID, func(t *models.Task) error {
		if !newStart.Before(t.EndDate) {
			return models.NewValidationError("Start date must be before end date")
		}
		t.StartDate = newStart
		return nil
	})
}

// UpdateEndDate changes the end date, keeping it after the stored start date.
func (s *TaskService) UpdateEndDate(ctx context.Context, userID, projectID, taskID, endDate string) (*models.Task, error) {
	if endDate == "" {
		return nil, models.NewValidationError("End date is required")
	}
	newEnd, err := models.ParseDate(endDate)
	if err != nil {
		return nil, models.NewValidationError("Invalid end date format")
	}
	return s.update(ctx, userID, projectID, taskID, func(t *models.Task) error {
		if !newEnd.After(t.StartDate) {
			return models.NewValidationError("End date must be after start date")
		}
		t.EndDate = newEnd
		return nil
	})
}

// UpdateStatus sets the task status after enum validation.
func (s *TaskService) UpdateStatus(ctx context.Context, userID, projectID, taskID, status string) (*models.Task, error) {
	if status == "" {
		return nil, models.NewValidationError("Status is required")
	}
	if !models.ValidTaskStatus(models.TaskStatus(status)) {
		return nil, models.NewValidationError("Invalid status. Must be one of: to-do, in-progress, done, overdue")
	}
	return s.update(ctx, userID, projectID, taskID, func(t *models.Task) error {
		t.Status = models.TaskStatus(status)
		return nil
	})
}

// ApplyUpdate runs the legacy multi-field update as independent sequential
// per-field operations. There is no cross-field transaction; the first
// failure stops the sequence.
func (s *TaskService) ApplyUpdate(ctx context.Context, userID, projectID, taskID string, update TaskUpdate) (*models.Task, error) {
	var task *models.Task
	var err error
	apply := func(f func() (*models.Task, error)) bool {
		task, err = f()
		return err == nil
	}

	if update.Title != nil && !apply(func() (*models.Task, error) {
		return s.UpdateTitle(ctx, userID, projectID, taskID, *update.Title)
	}) {
		return nil, err
	}
	if update.Description != nil && !apply(func() (*models.Task, error) {
		return s.UpdateDescription(ctx, userID, projectID, taskID, *update.Description)
	}) {
		return nil, err
	}
	if update.AssignTo != nil && !apply(func() (*models.Task, error) {
		return s.UpdateAssignTo(ctx, userID, projectID, taskID, *update.AssignTo)
	}) {
		return nil, err
	}
	if update.StartDate != nil && !apply(func() (*models.Task, error) {
		return s.UpdateStartDate(ctx, userID, projectID, taskID, *update.StartDate)
	}) {
		return nil, err
	}
	if update.EndDate != nil && !apply(func() (*models.Task, error) {
		return s.UpdateEndDate(ctx, userID, projectID, taskID, *update.EndDate)
	}) {
		return nil, err
	}
	if update.Status != nil && !apply(func() (*models.Task, error) {
		return s.UpdateStatus(ctx, userID, projectID, taskID, *update.Status)
	}) {
		return nil, err
	}

	if task == nil {
		return s.GetTask(ctx, userID, projectID, taskID)
	}
	return task, nil
}

// DeleteTask removes the task from its project.
func (s *TaskService) DeleteTask(ctx context.Context, userID, projectID, taskID string) error {
	user, err := loadUser(ctx, s.Repo, userID)
	if err != nil {
		return err
	}
	project, err := loadProject(user, projectID)
	if err != nil {
		return err
	}
	id, err := parseID(taskID, "task")
	if err != nil {
		return err
	}
	if !project.RemoveTask(id) {
		return models.NewNotFoundError("task")
	}
	return s.Repo.Save(ctx, user)
}

// update runs the single-field mutation against the located task and persists
// the whole aggregate.
func (s *TaskService) update(ctx context.Context, userID, projectID, taskID string, mutate func(*models.Task) error) (*models.Task, error) {
	user, err := loadUser(ctx, s.Repo, userID)
	if err != nil {
		return nil, err
	}
	project, err := loadProject(user, projectID)
	if err != nil {
		return nil, err
	}
	task, err := loadTask(project, taskID)
	if err != nil {
		return nil, err
	}
	if err := mutate(task); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return task, nil
}
