package middleware

import (
	"context"
	"net/http"
	"strings"

	"projectdesk/logging"
	"projectdesk/services"

	"github.com/gorilla/mux"
)

type contextKey string

const userIDKey contextKey = "authUserID"

// AuthUserID returns the user ID the request's token was issued for.
func AuthUserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// JWTAuth validates the bearer token and stores its subject in the request
// context. When the route carries a {userID} segment the subject must match
// it: a valid token for one account cannot address another account's data.
func JWTAuth(jwtService *services.JWTService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logging.Logger.Warnf("Authorization header missing for %s %s", r.Method, r.URL.Path)
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			userID, err := jwtService.ValidateToken(tokenStr)
			if err != nil {
				logging.Logger.Warnf("Invalid token for %s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			if pathUserID, ok := mux.Vars(r)["userID"]; ok && pathUserID != userID {
				logging.Logger.Warnf("Token subject %s addressed foreign user %s on %s %s", userID, pathUserID, r.Method, r.URL.Path)
				http.Error(w, "Access forbidden: token does not match user", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
