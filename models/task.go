package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	TaskToDo       TaskStatus = "to-do"
	TaskInProgress TaskStatus = "in-progress"
	TaskDone       TaskStatus = "done"
	TaskOverdue    TaskStatus = "overdue"
)

// ValidTaskStatus reports whether s is one of the fixed task statuses.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskToDo, TaskInProgress, TaskDone, TaskOverdue:
		return true
	}
	return false
}

// Task is an embedded sub-document of Project.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	AssignTo    string             `bson:"assignTo" json:"assignTo"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"`
	EndDate     time.Time          `bson:"endDate" json:"endDate"`
	Status      TaskStatus         `bson:"status" json:"status"`
}
