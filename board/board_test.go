package board

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"projectdesk/client"
)

type fakeSource struct {
	projects []client.Project
	tasks    map[string][]client.Task
	taskErr  map[string]error
}

func (f *fakeSource) GetProjects(_ context.Context, _ string) ([]client.Project, error) {
	return f.projects, nil
}

func (f *fakeSource) GetTasks(_ context.Context, _ string, projectID string) ([]client.Task, error) {
	if err := f.taskErr[projectID]; err != nil {
		return nil, err
	}
	return f.tasks[projectID], nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func loadedBoard(t *testing.T, src *fakeSource) *Board {
	t.Helper()
	b := New(src, "u1")
	b.now = func() time.Time { return date(2024, 6, 1) }
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return b
}

func TestLoadNormalizesIdentifiers(t *testing.T) {
	src := &fakeSource{
		projects: []client.Project{
			{ID: "p1", Name: "canonical"},
			{MongoID: "p2", Name: "mongo alias"},
			{Name: "no id at all"},
		},
		tasks: map[string][]client.Task{
			"p1": {
				{AltID: "t1", Title: "aliased", Status: "to-do", EndDate: date(2099, 1, 1)},
				{Title: "dropped", Status: "to-do"},
			},
		},
	}
	b := loadedBoard(t, src)

	projects := b.Projects()
	if len(projects) != 2 {
		t.Fatalf("projects = %+v", projects)
	}
	for _, p := range projects {
		if p.ID == "" {
			t.Fatalf("project without ID survived: %+v", p)
		}
	}

	tasks := b.Tasks("p1")
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Fatalf("tasks = %+v", tasks)
	}
	if tasks[0].ProjectID != "p1" {
		t.Fatalf("task not stamped with project: %+v", tasks[0])
	}
}

func TestLoadDegradesFailedTaskListing(t *testing.T) {
	src := &fakeSource{
		projects: []client.Project{{ID: "p1"}, {ID: "p2"}},
		tasks: map[string][]client.Task{
			"p2": {{ID: "t1", Title: "fine", Status: "to-do", EndDate: date(2099, 1, 1)}},
		},
		taskErr: map[string]error{"p1": errors.New("boom")},
	}
	b := loadedBoard(t, src)

	if len(b.Projects()) != 2 {
		t.Fatal("failing task listing removed its project")
	}
	if got := b.Tasks("p1"); len(got) != 0 {
		t.Fatalf("tasks of failed project = %+v", got)
	}
	if got := b.Tasks("p2"); len(got) != 1 {
		t.Fatalf("tasks of healthy project = %+v", got)
	}
}

func TestProgress(t *testing.T) {
	src := &fakeSource{
		projects: []client.Project{{ID: "p1"}, {ID: "empty"}},
		tasks: map[string][]client.Task{
			"p1": {
				{ID: "t1", Status: "done", EndDate: date(2099, 1, 1)},
				{ID: "t2", Status: "done", EndDate: date(2099, 1, 1)},
				{ID: "t3", Status: "to-do", EndDate: date(2099, 1, 1)},
			},
		},
	}
	b := loadedBoard(t, src)

	// 2 of 3 done rounds to 67, not truncates to 66.
	if got := b.Progress("p1"); got != 67 {
		t.Fatalf("progress = %d, want 67", got)
	}
	if got := b.Progress("empty"); got != 0 {
		t.Fatalf("empty project progress = %d, want 0", got)
	}
}

func TestDateRange(t *testing.T) {
	src := &fakeSource{
		projects: []client.Project{
			{ID: "explicit", StartDate: date(2024, 1, 1), EndDate: date(2024, 12, 31)},
			{ID: "derived"},
		},
		tasks: map[string][]client.Task{
			"derived": {
				{ID: "t1", StartDate: date(2024, 3, 10), EndDate: date(2024, 4, 1), Status: "done"},
				{ID: "t2", StartDate: date(2024, 2, 1), EndDate: date(2024, 5, 20), Status: "done"},
			},
		},
	}
	b := loadedBoard(t, src)

	start, end := b.DateRange("explicit")
	if !start.Equal(date(2024, 1, 1)) || !end.Equal(date(2024, 12, 31)) {
		t.Fatalf("explicit range = %v .. %v", start, end)
	}

	start, end = b.DateRange("derived")
	if !start.Equal(date(2024, 2, 1)) || !end.Equal(date(2024, 5, 20)) {
		t.Fatalf("derived range = %v .. %v", start, end)
	}
}

func TestSweepOverdueIsDisplayOnly(t *testing.T) {
	src := &fakeSource{
		projects: []client.Project{{ID: "p1"}},
		tasks: map[string][]client.Task{
			"p1": {
				{ID: "past", Status: "in-progress", EndDate: date(2024, 5, 1)},
				{ID: "pastDone", Status: "done", EndDate: date(2024, 5, 1)},
				{ID: "future", Status: "to-do", EndDate: date(2024, 7, 1)},
			},
		},
	}
	b := loadedBoard(t, src) // now = 2024-06-01, Load already swept

	byID := map[string]string{}
	for _, task := range b.Tasks("p1") {
		byID[task.ID] = task.Status
	}
	if byID["past"] != "overdue" {
		t.Fatalf("past task status = %q", byID["past"])
	}
	// Done tasks never go overdue, future tasks keep their status.
	if byID["pastDone"] != "done" || byID["future"] != "to-do" {
		t.Fatalf("statuses = %v", byID)
	}

	// The stored data at the source is untouched.
	if src.tasks["p1"][0].Status != "in-progress" {
		t.Fatal("sweep wrote through to the data source")
	}

	// A second sweep with nothing new changes nothing.
	if b.SweepOverdue() {
		t.Fatal("idempotent sweep reported a change")
	}
}

func TestStartOverdueSweep(t *testing.T) {
	src := &fakeSource{
		projects: []client.Project{{ID: "p1"}},
		tasks: map[string][]client.Task{
			"p1": {{ID: "t1", Status: "to-do", EndDate: date(2024, 6, 10)}},
		},
	}
	b := New(src, "u1")
	var clockMu sync.Mutex
	current := date(2024, 6, 1)
	b.now = func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		return current
	}
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	changed := make(chan struct{}, 1)
	b.StartOverdueSweep(5*time.Millisecond, func() { changed <- struct{}{} })
	defer b.StopSweep()

	// Move past the deadline and wait for the ticker to notice.
	clockMu.Lock()
	current = date(2024, 6, 20)
	clockMu.Unlock()
	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep never reported the overdue task")
	}

	if got := b.Tasks("p1"); got[0].Status != "overdue" {
		t.Fatalf("status = %q", got[0].Status)
	}
}
