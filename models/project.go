package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectPending   ProjectStatus = "pending"
)

// ValidProjectStatus reports whether s is one of the fixed project statuses.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectPending:
		return true
	}
	return false
}

// Project is an embedded sub-document of User. Its ID is only meaningful
// within the owning user's scope.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"`
	EndDate     time.Time          `bson:"endDate,omitempty" json:"endDate"`
	Status      ProjectStatus      `bson:"status" json:"status"`
	Tasks       []Task             `bson:"tasks" json:"tasks"`
}

// FindTask locates an embedded task by ID.
func (p *Project) FindTask(taskID primitive.ObjectID) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			return &p.Tasks[i]
		}
	}
	return nil
}

// RemoveTask drops the task with the given ID. Returns false when absent.
func (p *Project) RemoveTask(taskID primitive.ObjectID) bool {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
			return true
		}
	}
	return false
}
