package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"projectdesk/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memRepo is an in-memory UserRepository for tests. Like the real store it
// hands out copies, so mutations only stick after Save.
type memRepo struct {
	users map[string]*models.User
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*models.User{}}
}

func cloneUser(u *models.User) *models.User {
	cp := *u
	cp.Projects = make([]models.Project, len(u.Projects))
	for i, p := range u.Projects {
		cp.Projects[i] = p
		cp.Projects[i].Tasks = append([]models.Task(nil), p.Tasks...)
	}
	return &cp
}

func (m *memRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := m.users[id.Hex()]
	if !ok {
		return nil, models.NewNotFoundError("user")
	}
	return cloneUser(u), nil
}

func (m *memRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, models.NewNotFoundError("user")
}

func (m *memRepo) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID.Hex()] = cloneUser(user)
	return user.ID, nil
}

func (m *memRepo) Save(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID.Hex()]; !ok {
		return models.NewNotFoundError("user")
	}
	m.users[user.ID.Hex()] = cloneUser(user)
	return nil
}

func (m *memRepo) DeleteExpiredUnverified(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, u := range m.users {
		if !u.Verified && u.VerificationExpiry.Before(now) {
			delete(m.users, id)
			n++
		}
	}
	return n, nil
}

// failMailer always errors, to exercise the swallowed-failure path.
type failMailer struct{}

func (failMailer) Send(_, _, _ string) error { return errors.New("smtp unreachable") }

// okMailer records the last mail it was asked to send.
type okMailer struct {
	to, subject, body string
}

func (m *okMailer) Send(to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return nil
}

func seedUser(t *testing.T, repo *memRepo, email string, verified bool) string {
	t.Helper()
	u := &models.User{
		Email:              email,
		Password:           email, // tests that need login go through Register instead
		Verified:           verified,
		VerificationExpiry: time.Now().Add(time.Hour),
		Projects:           []models.Project{},
	}
	id, err := repo.Insert(context.Background(), u)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id.Hex()
}

func seedProject(t *testing.T, repo *memRepo, userID string) string {
	t.Helper()
	svc := NewProjectService(repo)
	p, err := svc.CreateProject(context.Background(), userID, ProjectInput{
		Name:      "Test Project",
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
	})
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p.ID.Hex()
}
