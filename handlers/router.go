package handlers

import (
	"net/http"

	"projectdesk/middleware"
	"projectdesk/services"

	"github.com/gorilla/mux"
)

// NewRouter wires the full REST surface. Auth routes are open; project and
// task routes sit behind the JWT middleware with the subject-vs-path check.
func NewRouter(auth *AuthHandler, projects *ProjectHandler, tasks *TaskHandler, jwtService *services.JWTService) *mux.Router {
	r := mux.NewRouter()

	// Connectivity probes for the clients.
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "projectdesk API"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/test", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Server is working!"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", auth.Register).Methods(http.MethodPost)
	authRouter.HandleFunc("/verify-email/{token}", auth.VerifyEmail).Methods(http.MethodGet)
	authRouter.HandleFunc("/login", auth.Login).Methods(http.MethodPost)
	authRouter.HandleFunc("/user/{id}", auth.GetUserByID).Methods(http.MethodGet)
	authRouter.HandleFunc("/logout", auth.Logout).Methods(http.MethodPost)

	projRouter := r.PathPrefix("/api/proj").Subrouter()
	projRouter.Use(middleware.JWTAuth(jwtService))
	projRouter.HandleFunc("/create", projects.CreateProject).Methods(http.MethodPost)
	projRouter.HandleFunc("/{userID}/projects", projects.GetProjects).Methods(http.MethodGet)
	projRouter.HandleFunc("/{userID}/projects/{projectID}", projects.GetProject).Methods(http.MethodGet)
	projRouter.HandleFunc("/{userID}/projects/{projectID}/title", projects.UpdateTitle).Methods(http.MethodPut)
	projRouter.HandleFunc("/{userID}/projects/{projectID}/description", projects.UpdateDescription).Methods(http.MethodPut)
	projRouter.HandleFunc("/{userID}/projects/{projectID}/start-date", projects.UpdateStartDate).Methods(http.MethodPut)
	projRouter.HandleFunc("/{userID}/projects/{projectID}/end-date", projects.UpdateEndDate).Methods(http.MethodPut)
	projRouter.HandleFunc("/{userID}/projects/{projectID}/status", projects.UpdateStatus).Methods(http.MethodPut)
	projRouter.HandleFunc("/{userID}/projects/{projectID}", projects.DeleteProject).Methods(http.MethodDelete)

	taskRouter := r.PathPrefix("/api/task").Subrouter()
	taskRouter.Use(middleware.JWTAuth(jwtService))
	taskRouter.HandleFunc("/create", tasks.CreateTask).Methods(http.MethodPost)
	taskRouter.HandleFunc("/update-status", tasks.UpdateStatusLegacy).Methods(http.MethodPut)
	taskRouter.HandleFunc("/update-task", tasks.UpdateTaskLegacy).Methods(http.MethodPut)
	taskRouter.HandleFunc("/{userID}/projects/{projectID}/tasks", tasks.GetTasks).Methods(http.MethodGet)
	taskRouter.HandleFunc("/{userID}/projects/{projectID}/tasks/{taskID}", tasks.GetTask).Methods(http.MethodGet)
	taskRouter.HandleFunc("/{userID}/projects/{projectID}/tasks/{taskID}/title", tasks.UpdateTitle).Methods(http.MethodPut)
	taskRouter.HandleFunc("/{userID}/projects/{projectID}/tasks/{taskID}/description", tasks.UpdateDescription).Methods(http.MethodPut)
	taskRouter.HandleFunc("/{userID}/projects/{projectID}/tasks/{taskID}/assign", tasks.UpdateAssignTo).Methods(http.MethodPut)
	taskRouter.HandleFunc("/{userID}/projects/{projectID}/tasks/{taskID}/start-date", tasks.UpdateStartDate).Methods(http.MethodPut)
	taskRouter.HandleFunc("/{userID}/projects/{projectID}/tasks/{taskID}/end-date", tasks.UpdateEndDate).Methods(http.MethodPut)
	taskRouter.HandleFunc("/{userID}/projects/{projectID}/tasks/{taskID}/status", tasks.UpdateStatus).Methods(http.MethodPut)
	taskRouter.HandleFunc("/{userID}/projects/{projectID}/tasks/{taskID}", tasks.DeleteTask).Methods(http.MethodDelete)

	return r
}
