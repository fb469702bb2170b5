package services

import (
	"context"
	"fmt"

	"projectdesk/models"
	"projectdesk/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The user → project → task containment is addressed as an explicit lookup
// chain: each level resolves by ID and fails with a typed not-found error at
// the first missing link.

func parseID(hex, entity string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, models.NewValidationError(fmt.Sprintf("invalid %s ID format", entity))
	}
	return id, nil
}

func loadUser(ctx context.Context, repo repositories.UserRepository, userID string) (*models.User, error) {
	id, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}

func loadProject(user *models.User, projectID string) (*models.Project, error) {
	id, err := parseID(projectID, "project")
	if err != nil {
		return nil, err
	}
	project := user.FindProject(id)
	if project == nil {
		return nil, models.NewNotFoundError("project")
	}
	return project, nil
}

func loadTask(project *models.Project, taskID string) (*models.Task, error) {
	id, err := parseID(taskID, "task")
	if err != nil {
		return nil, err
	}
	task := project.FindTask(id)
	if task == nil {
		return nil, models.NewNotFoundError("task")
	}
	return task, nil
}
