package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"projectdesk/models"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"projectdesk/services"
)

type memRepo struct {
	users map[string]*models.User
}

func (m *memRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := m.users[id.Hex()]
	if !ok {
		return nil, models.NewNotFoundError("user")
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.NewNotFoundError("user")
}

func (m *memRepo) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	m.users[user.ID.Hex()] = &cp
	return user.ID, nil
}

func (m *memRepo) Save(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID.Hex()]; !ok {
		return models.NewNotFoundError("user")
	}
	cp := *user
	m.users[user.ID.Hex()] = &cp
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

type fixture struct {
	repo   *memRepo
	jwt    *services.JWTService
	server *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := &memRepo{users: map[string]*models.User{}}
	jwt := services.NewJWTService("test-secret")

	userSvc := services.NewUserService(repo, jwt, nil, "")
	router := NewRouter(
		NewAuthHandler(userSvc),
		NewProjectHandler(services.NewProjectService(repo)),
		NewTaskHandler(services.NewTaskService(repo)),
		jwt,
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &fixture{repo: repo, jwt: jwt, server: srv}
}

// registerVerified creates an account through the API, force-verifies it in
// the store, logs in and returns userID plus a bearer token.
func (f *fixture) registerVerified(t *testing.T, email string) (string, string) {
	t.Helper()
	status, body := f.do(t, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": email, "password": "secret1"})
	if status != http.StatusCreated {
		t.Fatalf("register returned %d: %v", status, body)
	}
	userID := body["userId"].(string)

	f.repo.users[userID].Verified = true

	status, body = f.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": email, "password": "secret1"})
	if status != http.StatusOK {
		t.Fatalf("login returned %d: %v", status, body)
	}
	return userID, body["accesstoken"].(string)
}

func (f *fixture) do(t *testing.T, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reqBody *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, f.server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestProbes(t *testing.T) {
	f := newFixture(t)
	for path, key := range map[string]string{"/": "message", "/test": "message", "/api/health": "status"} {
		status, body := f.do(t, http.MethodGet, path, "", nil)
		if status != http.StatusOK {
			t.Errorf("GET %s returned %d", path, status)
		}
		if body[key] == "" {
			t.Errorf("GET %s missing %q field: %v", path, key, body)
		}
	}
}

func TestRegisterDuplicate(t *testing.T) {
	f := newFixture(t)
	payload := map[string]string{"email": "dup@example.com", "password": "secret1"}

	if status, _ := f.do(t, http.MethodPost, "/api/auth/register", "", payload); status != http.StatusCreated {
		t.Fatalf("first register returned %d", status)
	}
	status, body := f.do(t, http.MethodPost, "/api/auth/register", "", payload)
	if status != http.StatusBadRequest {
		t.Fatalf("second register returned %d", status)
	}
	if body["msg"] != "User already exist" {
		t.Fatalf("msg = %v", body["msg"])
	}
}

func TestLoginBeforeVerification(t *testing.T) {
	f := newFixture(t)
	payload := map[string]string{"email": "w@example.com", "password": "secret1"}
	if status, _ := f.do(t, http.MethodPost, "/api/auth/register", "", payload); status != http.StatusCreated {
		t.Fatal("register failed")
	}

	status, body := f.do(t, http.MethodPost, "/api/auth/login", "", payload)
	if status != http.StatusBadRequest || body["msg"] != "Email is not verified" {
		t.Fatalf("got %d %v", status, body)
	}
}

func TestAuthMiddleware(t *testing.T) {
	f := newFixture(t)
	userID, token := f.registerVerified(t, "mw@example.com")

	// No token.
	if status, _ := f.do(t, http.MethodGet, "/api/proj/"+userID+"/projects", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("missing token returned %d", status)
	}
	// Garbage token.
	if status, _ := f.do(t, http.MethodGet, "/api/proj/"+userID+"/projects", "garbage", nil); status != http.StatusUnauthorized {
		t.Fatalf("garbage token returned %d", status)
	}
	// Valid token, someone else's resources.
	otherID, _ := f.registerVerified(t, "other@example.com")
	if status, _ := f.do(t, http.MethodGet, "/api/proj/"+otherID+"/projects", token, nil); status != http.StatusForbidden {
		t.Fatalf("cross-user path access returned %d", status)
	}
	// Valid token, own resources.
	if status, _ := f.do(t, http.MethodGet, "/api/proj/"+userID+"/projects", token, nil); status != http.StatusOK {
		t.Fatalf("own resources returned %d", status)
	}
}

func TestCreateProjectSubjectCheck(t *testing.T) {
	f := newFixture(t)
	_, token := f.registerVerified(t, "own@example.com")
	otherID, _ := f.registerVerified(t, "victim@example.com")

	status, _ := f.do(t, http.MethodPost, "/api/proj/create", token, map[string]interface{}{
		"userID": otherID,
		"projectData": map[string]string{
			"name": "planted", "startDate": "2024-01-01", "endDate": "2024-02-01",
		},
	})
	if status != http.StatusForbidden {
		t.Fatalf("create for another user returned %d", status)
	}
}

func TestProjectAndTaskFlow(t *testing.T) {
	f := newFixture(t)
	userID, token := f.registerVerified(t, "flow@example.com")

	status, project := f.do(t, http.MethodPost, "/api/proj/create", token, map[string]interface{}{
		"userID": userID,
		"projectData": map[string]string{
			"name": "Release", "startDate": "2024-01-01", "endDate": "2024-06-30",
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create project returned %d: %v", status, project)
	}
	projectID := project["id"].(string)

	status, task := f.do(t, http.MethodPost, "/api/task/create", token, map[string]interface{}{
		"userID":    userID,
		"projectID": projectID,
		"taskData": map[string]string{
			"title": "Cut branch", "startDate": "2024-01-05", "endDate": "2024-01-10",
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create task returned %d: %v", status, task)
	}
	taskID := task["id"].(string)

	// Canonical per-field status route.
	base := fmt.Sprintf("/api/task/%s/projects/%s/tasks/%s", userID, projectID, taskID)
	status, body := f.do(t, http.MethodPut, base+"/status", token, map[string]string{"status": "in-progress"})
	if status != http.StatusOK {
		t.Fatalf("status update returned %d: %v", status, body)
	}
	if body["task"].(map[string]interface{})["status"] != "in-progress" {
		t.Fatalf("envelope task = %v", body["task"])
	}

	// Legacy body-addressed status route.
	status, body = f.do(t, http.MethodPut, "/api/task/update-status", token, map[string]string{
		"userID": userID, "projectID": projectID, "taskID": taskID, "status": "done",
	})
	if status != http.StatusOK {
		t.Fatalf("legacy status update returned %d: %v", status, body)
	}

	// Legacy multi-field route.
	status, body = f.do(t, http.MethodPut, "/api/task/update-task", token, map[string]interface{}{
		"userID": userID, "projectID": projectID, "taskID": taskID,
		"taskData": map[string]string{"title": "Cut release branch"},
	})
	if status != http.StatusOK {
		t.Fatalf("legacy update returned %d: %v", status, body)
	}
	if body["task"].(map[string]interface{})["title"] != "Cut release branch" {
		t.Fatalf("legacy update envelope = %v", body)
	}

	// Unknown task in a known project is a 404, not a 500.
	status, _ = f.do(t, http.MethodGet,
		fmt.Sprintf("/api/task/%s/projects/%s/tasks/%s", userID, projectID, primitive.NewObjectID().Hex()),
		token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown task returned %d", status)
	}

	status, body = f.do(t, http.MethodDelete, base, token, nil)
	if status != http.StatusOK || body["msg"] != "Task deleted successfully" {
		t.Fatalf("delete task: %d %v", status, body)
	}

	status, body = f.do(t, http.MethodDelete, fmt.Sprintf("/api/proj/%s/projects/%s", userID, projectID), token, nil)
	if status != http.StatusOK || body["msg"] != "Project deleted successfully" {
		t.Fatalf("delete project: %d %v", status, body)
	}
}

func TestProjectFieldUpdateEnvelope(t *testing.T) {
	f := newFixture(t)
	userID, token := f.registerVerified(t, "env@example.com")

	_, project := f.do(t, http.MethodPost, "/api/proj/create", token, map[string]interface{}{
		"userID": userID,
		"projectData": map[string]string{
			"name": "Env", "startDate": "2024-01-01", "endDate": "2024-06-30",
		},
	})
	projectID := project["id"].(string)

	status, body := f.do(t, http.MethodPut,
		fmt.Sprintf("/api/proj/%s/projects/%s/title", userID, projectID),
		token, map[string]string{"name": "Env v2"})
	if status != http.StatusOK {
		t.Fatalf("title update returned %d: %v", status, body)
	}
	if body["msg"] != "Project name updated successfully" {
		t.Fatalf("msg = %v", body["msg"])
	}
	if body["project"].(map[string]interface{})["name"] != "Env v2" {
		t.Fatalf("project in envelope = %v", body["project"])
	}
}

func TestGetUserOmitsPassword(t *testing.T) {
	f := newFixture(t)
	userID, _ := f.registerVerified(t, "leak@example.com")

	status, body := f.do(t, http.MethodGet, "/api/auth/user/"+userID, "", nil)
	if status != http.StatusOK {
		t.Fatalf("get user returned %d", status)
	}
	if _, ok := body["password"]; ok {
		t.Fatalf("password field present in response: %v", body)
	}
}
