package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"projectdesk/logging"
	"projectdesk/services"

	"github.com/gorilla/mux"
)

type AuthHandler struct {
	UserService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{UserService: userService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an unverified account. Mail failure still yields 201, the
// msg field says what happened.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID, msg, err := h.UserService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Registered user %s", req.Email)
	writeJSON(w, http.StatusCreated, map[string]string{"msg": msg, "userId": userID})
}

// VerifyEmail flips the verified flag and serves the static confirmation
// page.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if err := h.UserService.VerifyEmail(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	page := filepath.Join("public", "email-verified.html")
	if _, err := os.Stat(page); err != nil {
		writeMessage(w, http.StatusOK, "Email verified successfully")
		return
	}
	http.ServeFile(w, r, page)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"msg":         "Logged in successfully.",
		"accesstoken": token,
	})
}

// GetUserByID returns the user document minus the password.
func (h *AuthHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetUserByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout is a formality: the session lives client-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Logout successful (client clears token)")
}
