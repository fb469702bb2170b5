package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"projectdesk/logging"
	"projectdesk/models"
	"projectdesk/services"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

// writeError maps the domain error taxonomy onto status codes: validation and
// credential problems are 400, chain misses are 404, everything else is 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case models.IsValidation(err):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case models.IsNotFound(err):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, "Invalid User credentials")
	case errors.Is(err, services.ErrEmailNotVerified):
		writeMessage(w, http.StatusBadRequest, "Email is not verified")
	default:
		logging.Logger.Errorf("Unexpected error: %v", err)
		body := map[string]string{"msg": "Oops something went wrong"}
		if os.Getenv("APP_ENV") != "production" {
			body["error"] = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, body)
	}
}
