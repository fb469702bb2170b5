package services

import (
	"context"
	"testing"

	"projectdesk/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateProject(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	userID := seedUser(t, repo, "p@example.com", true)
	svc := NewProjectService(repo)

	p, err := svc.CreateProject(ctx, userID, ProjectInput{
		Name:        "Website relaunch",
		Description: "Q1 initiative",
		StartDate:   "2024-02-01",
		EndDate:     "2024-05-31",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID.IsZero() {
		t.Fatal("project ID was not assigned")
	}
	if p.Status != models.ProjectActive {
		t.Fatalf("status = %q, want default %q", p.Status, models.ProjectActive)
	}

	// The project must be visible through a fresh read.
	list, err := svc.GetProjects(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Website relaunch" {
		t.Fatalf("unexpected project list: %+v", list)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	userID := seedUser(t, repo, "p@example.com", true)
	svc := NewProjectService(repo)

	cases := []struct {
		name  string
		input ProjectInput
	}{
		{"missing name", ProjectInput{StartDate: "2024-01-01", EndDate: "2024-02-01"}},
		{"missing dates", ProjectInput{Name: "x"}},
		{"bad start date", ProjectInput{Name: "x", StartDate: "soon", EndDate: "2024-02-01"}},
		{"bad status", ProjectInput{Name: "x", StartDate: "2024-01-01", EndDate: "2024-02-01", Status: "archived"}},
	}
	for _, c := range cases {
		if _, err := svc.CreateProject(ctx, userID, c.input); !models.IsValidation(err) {
			t.Errorf("%s: got %v, want validation error", c.name, err)
		}
	}
}

func TestGetProjectNotFoundChain(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	userID := seedUser(t, repo, "p@example.com", true)
	svc := NewProjectService(repo)

	// Unknown user breaks the chain at the first link.
	if _, err := svc.GetProject(ctx, primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()); !models.IsNotFound(err) {
		t.Fatalf("unknown user: %v, want not-found", err)
	}
	// Known user, unknown project.
	if _, err := svc.GetProject(ctx, userID, primitive.NewObjectID().Hex()); !models.IsNotFound(err) {
		t.Fatalf("unknown project: %v, want not-found", err)
	}
	// Malformed hex never reaches the store.
	if _, err := svc.GetProject(ctx, userID, "zzz"); !models.IsValidation(err) {
		t.Fatalf("malformed project ID: %v, want validation error", err)
	}
}

func TestProjectFieldUpdates(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	userID := seedUser(t, repo, "p@example.com", true)
	projectID := seedProject(t, repo, userID)
	svc := NewProjectService(repo)

	if _, err := svc.UpdateName(ctx, userID, projectID, "Renamed"); err != nil {
		t.Fatalf("update name: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, userID, projectID, "completed"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, userID, projectID, "archived"); !models.IsValidation(err) {
		t.Fatal("invalid status accepted")
	}

	p, err := svc.GetProject(ctx, userID, projectID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if p.Name != "Renamed" || p.Status != models.ProjectCompleted {
		t.Fatalf("updates not persisted: %+v", p)
	}
}

func TestProjectDateOrdering(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	userID := seedUser(t, repo, "p@example.com", true)
	projectID := seedProject(t, repo, userID) // 2024-01-01 .. 2024-12-31
	svc := NewProjectService(repo)

	if _, err := svc.UpdateStartDate(ctx, userID, projectID, "2025-06-01"); !models.IsValidation(err) {
		t.Fatalf("start after end accepted: %v", err)
	}
	if _, err := svc.UpdateEndDate(ctx, userID, projectID, "2023-06-01"); !models.IsValidation(err) {
		t.Fatalf("end before start accepted: %v", err)
	}
	if _, err := svc.UpdateStartDate(ctx, userID, projectID, "2024-03-01"); err != nil {
		t.Fatalf("valid start date rejected: %v", err)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	userID := seedUser(t, repo, "p@example.com", true)
	projectID := seedProject(t, repo, userID)

	tasks := NewTaskService(repo)
	if _, err := tasks.CreateTask(ctx, userID, projectID, TaskInput{
		Title:     "doomed",
		StartDate: "2024-02-01",
		EndDate:   "2024-03-01",
	}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	svc := NewProjectService(repo)
	if err := svc.DeleteProject(ctx, userID, projectID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetProject(ctx, userID, projectID); !models.IsNotFound(err) {
		t.Fatalf("project still reachable: %v", err)
	}
	// Its tasks are gone with it.
	if _, err := tasks.GetTasks(ctx, userID, projectID); !models.IsNotFound(err) {
		t.Fatalf("task listing for deleted project: %v, want not-found", err)
	}
	if err := svc.DeleteProject(ctx, userID, projectID); !models.IsNotFound(err) {
		t.Fatalf("second delete: %v, want not-found", err)
	}
}
