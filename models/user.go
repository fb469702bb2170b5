package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// User is the root aggregate. Projects and their tasks are embedded and are
// always persisted together with the user document.
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email              string             `bson:"email" json:"email"`
	Password           string             `bson:"password" json:"password,omitempty"`
	Verified           bool               `bson:"verified" json:"verified"`
	VerificationExpiry time.Time          `bson:"verificationExpiry,omitempty" json:"-"`
	Projects           []Project          `bson:"projects" json:"projects"`
}

// Sanitized returns a copy safe to hand out over the API.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// FindProject locates an embedded project by ID.
func (u *User) FindProject(projectID primitive.ObjectID) *Project {
	for i := range u.Projects {
		if u.Projects[i].ID == projectID {
			return &u.Projects[i]
		}
	}
	return nil
}

// RemoveProject drops the project with the given ID from the user's list.
// Returns false when no such project exists.
func (u *User) RemoveProject(projectID primitive.ObjectID) bool {
	for i := range u.Projects {
		if u.Projects[i].ID == projectID {
			u.Projects = append(u.Projects[:i], u.Projects[i+1:]...)
			return true
		}
	}
	return false
}

// ValidateEmail checks the address shape used at registration.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return NewValidationError("email is required")
	}
	if !emailPattern.MatchString(email) {
		return NewValidationError("please enter a valid email address")
	}
	return nil
}

// ParseDate accepts the wire formats the clients actually send.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", value)
}
