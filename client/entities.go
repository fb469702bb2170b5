package client

import "time"

// The wire types keep the historical identifier aliases so one coalescing
// helper per entity replaces the per-call-site reconciliation the old client
// grew. The current server only ever emits "id".

type User struct {
	ID       string    `json:"id"`
	MongoID  string    `json:"_id"`
	Email    string    `json:"email"`
	Verified bool      `json:"verified"`
	Projects []Project `json:"projects"`
}

func (u User) CanonicalID() string {
	return coalesce(u.ID, u.MongoID)
}

type Project struct {
	ID          string    `json:"id"`
	MongoID     string    `json:"_id"`
	AltID       string    `json:"projectId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
	Tasks       []Task    `json:"tasks"`
}

func (p Project) CanonicalID() string {
	return coalesce(p.ID, p.MongoID, p.AltID)
}

type Task struct {
	ID          string    `json:"id"`
	MongoID     string    `json:"_id"`
	AltID       string    `json:"taskId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssignTo    string    `json:"assignTo"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
}

func (t Task) CanonicalID() string {
	return coalesce(t.ID, t.MongoID, t.AltID)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
