package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type RegisterResult struct {
	Msg    string `json:"msg"`
	UserID string `json:"userId"`
}

// Register creates an account. The backend answers 201 even when the
// verification mail could not be sent; Msg says which happened.
func (a *API) Register(ctx context.Context, email, password string) (*RegisterResult, error) {
	var result RegisterResult
	err := a.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Login authenticates and establishes the session: the user ID comes out of
// the token payload, same as the browser client did it.
func (a *API) Login(ctx context.Context, email, password string) (*Session, error) {
	var result struct {
		Msg         string `json:"msg"`
		AccessToken string `json:"accesstoken"`
	}
	if err := a.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result); err != nil {
		return nil, err
	}

	userID, err := tokenSubject(result.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("could not extract user ID from token: %w", err)
	}

	sess := &Session{Token: result.AccessToken, UserID: userID, Email: email}
	if err := a.setSession(sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}

// GetUser fetches the user document (password excluded by the server).
func (a *API) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := a.do(ctx, http.MethodGet, "/auth/user/"+userID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout tears the session down. The server call is a formality and its
// failure does not keep the client logged in.
func (a *API) Logout(ctx context.Context) {
	_ = a.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	a.ClearSession()
}

// tokenSubject decodes the JWT payload without verifying it; the client only
// needs the id claim to address its own routes.
func tokenSubject(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed token")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", err
	}
	var claims struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", fmt.Errorf("token has no id claim")
	}
	return claims.ID, nil
}
