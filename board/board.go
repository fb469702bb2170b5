package board

import (
	"context"
	"math"
	"sync"
	"time"

	"projectdesk/client"
	"projectdesk/logging"
)

// Project is the view-side projection of a backend project.
type Project struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
}

// Task is the view-side projection of a backend task. Status here is the
// displayed status: the overdue sweep may reclassify it without the stored
// status ever changing.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	AssignTo    string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
}

// DataSource is the slice of the API client the board needs.
type DataSource interface {
	GetProjects(ctx context.Context, userID string) ([]client.Project, error)
	GetTasks(ctx context.Context, userID, projectID string) ([]client.Task, error)
}

// Board holds the in-memory projects/tasks collections and the derived
// dashboard values. It is refreshed by full reload after most mutations.
type Board struct {
	mu     sync.Mutex
	source DataSource
	userID string

	projects []Project
	tasks    []Task

	now      func() time.Time
	sweepEnd chan struct{}
}

func New(source DataSource, userID string) *Board {
	return &Board{
		source: source,
		userID: userID,
		now:    time.Now,
	}
}

// Load replaces the whole in-memory state from the backend. Entities without
// a discoverable identifier are dropped; a failing task listing degrades that
// project to an empty column rather than failing the load.
func (b *Board) Load(ctx context.Context) error {
	remote, err := b.source.GetProjects(ctx, b.userID)
	if err != nil {
		return err
	}

	var projects []Project
	var tasks []Task
	for _, rp := range remote {
		id := rp.CanonicalID()
		if id == "" {
			logging.Logger.Warnf("Dropping project %q: no identifier found", rp.Name)
			continue
		}
		projects = append(projects, Project{
			ID:          id,
			Name:        rp.Name,
			Description: rp.Description,
			StartDate:   rp.StartDate,
			EndDate:     rp.EndDate,
			Status:      rp.Status,
		})

		remoteTasks, err := b.source.GetTasks(ctx, b.userID, id)
		if err != nil {
			logging.Logger.Warnf("Loading tasks for project %s failed: %v", id, err)
			continue
		}
		for _, rt := range remoteTasks {
			taskID := rt.CanonicalID()
			if taskID == "" {
				logging.Logger.Warnf("Dropping task %q: no identifier found", rt.Title)
				continue
			}
			tasks = append(tasks, Task{
				ID:          taskID,
				ProjectID:   id,
				Title:       rt.Title,
				Description: rt.Description,
				AssignTo:    rt.AssignTo,
				StartDate:   rt.StartDate,
				EndDate:     rt.EndDate,
				Status:      rt.Status,
			})
		}
	}

	b.mu.Lock()
	b.projects = projects
	b.tasks = tasks
	b.mu.Unlock()

	b.SweepOverdue()
	return nil
}

// Projects returns a snapshot of the project list.
func (b *Board) Projects() []Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Project, len(b.projects))
	copy(out, b.projects)
	return out
}

// Tasks returns a snapshot of the tasks of one project.
func (b *Board) Tasks(projectID string) []Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Task
	for _, t := range b.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// Progress is the rounded percentage of done tasks; 0 for an empty project.
func (b *Board) Progress(projectID string) int {
	tasks := b.Tasks(projectID)
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == "done" {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100))
}

// DateRange returns the project's explicit dates, or the min/max of its task
// dates when the explicit ones are absent.
func (b *Board) DateRange(projectID string) (time.Time, time.Time) {
	b.mu.Lock()
	var project *Project
	for i := range b.projects {
		if b.projects[i].ID == projectID {
			project = &b.projects[i]
			break
		}
	}
	b.mu.Unlock()

	if project != nil && !project.StartDate.IsZero() && !project.EndDate.IsZero() {
		return project.StartDate, project.EndDate
	}

	var start, end time.Time
	for _, t := range b.Tasks(projectID) {
		for _, d := range []time.Time{t.StartDate, t.EndDate} {
			if d.IsZero() {
				continue
			}
			if start.IsZero() || d.Before(start) {
				start = d
			}
			if end.IsZero() || d.After(end) {
				end = d
			}
		}
	}
	return start, end
}

// SweepOverdue reclassifies the displayed status of past-due tasks. It never
// writes anything back to the server. Reports whether anything changed.
func (b *Board) SweepOverdue() bool {
	now := b.now()
	b.mu.Lock()
	defer b.mu.Unlock()

	changed := false
	for i := range b.tasks {
		t := &b.tasks[i]
		if t.Status != "done" && t.Status != "overdue" && !t.EndDate.IsZero() && t.EndDate.Before(now) {
			t.Status = "overdue"
			changed = true
		}
	}
	return changed
}

// StartOverdueSweep runs SweepOverdue on a fixed interval until StopSweep.
// onChange fires only when a sweep actually reclassified something.
func (b *Board) StartOverdueSweep(interval time.Duration, onChange func()) {
	b.StopSweep()

	stop := make(chan struct{})
	b.mu.Lock()
	b.sweepEnd = stop
	b.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if b.SweepOverdue() && onChange != nil {
					onChange()
				}
			case <-stop:
				return
			}
		}
	}()
}

// StopSweep cancels the interval sweep; called on logout or UI teardown.
func (b *Board) StopSweep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sweepEnd != nil {
		close(b.sweepEnd)
		b.sweepEnd = nil
	}
}
