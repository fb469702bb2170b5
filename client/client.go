package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// APIError is a non-2xx backend response with its decoded message.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Msg)
}

// IsNotFound reports whether err is a 404 from the backend, which drives the
// route fallback chains.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// ErrBackendUnavailable is returned while the circuit breaker is open.
var ErrBackendUnavailable = errors.New("backend unavailable")

// API wraps every backend call: bearer token attach, error decoding, session
// teardown on 401, and a circuit breaker around the transport.
type API struct {
	baseURL        string
	httpClient     *http.Client
	store          *SessionStore
	session        *Session
	breaker        *gobreaker.CircuitBreaker
	onUnauthorized func()
}

type Option func(*API)

// WithHTTPClient overrides the transport, used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *API) { a.httpClient = hc }
}

// WithUnauthorizedHandler registers the callback run after a 401 tears the
// session down (the UI uses it to fall back to the login view).
func WithUnauthorizedHandler(fn func()) Option {
	return func(a *API) { a.onUnauthorized = fn }
}

func NewAPI(serverURL string, store *SessionStore, opts ...Option) *API {
	a := &API{
		baseURL:    strings.TrimRight(serverURL, "/") + "/api",
		httpClient: &http.Client{Timeout: 15 * time.Second},
		store:      store,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "projectdesk-backend",
			MaxRequests: 1,
			Timeout:     5 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 3
			},
		}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if sess, err := store.Load(); err == nil && sess != nil {
		a.session = sess
	}
	return a
}

// Session returns the current login state, nil when logged out.
func (a *API) Session() *Session { return a.session }

func (a *API) setSession(sess *Session) error {
	a.session = sess
	return a.store.Save(sess)
}

// ClearSession drops the in-memory and persisted session.
func (a *API) ClearSession() {
	a.session = nil
	if err := a.store.Clear(); err != nil {
		// Nothing sensible to do beyond carrying on logged out.
		_ = err
	}
}

// do runs one round trip. Transport failures feed the breaker; HTTP error
// statuses are decoded into APIError. A 401 tears down the session first.
func (a *API) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.session != nil && a.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.session.Token)
	}

	result, err := a.breaker.Execute(func() (interface{}, error) {
		return a.httpClient.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return ErrBackendUnavailable
		}
		return err
	}
	resp := result.(*http.Response)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		a.ClearSession()
		if a.onUnauthorized != nil {
			a.onUnauthorized()
		}
		return &APIError{Status: resp.StatusCode, Msg: "session expired"}
	}

	if resp.StatusCode >= 400 {
		var payload struct {
			Msg string `json:"msg"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Msg == "" {
			payload.Msg = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Msg: payload.Msg}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Health probes /api/health, falling back to the root route. Any HTTP
// response at all counts as reachable.
func (a *API) Health(ctx context.Context) bool {
	if err := a.do(ctx, http.MethodGet, "/health", nil, nil); err == nil {
		return true
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(a.baseURL, "/api")+"/", nil)
	if err != nil {
		return false
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
