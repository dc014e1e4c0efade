// Package client implements the API-consumer side of the session mechanism:
// an HTTP client that attaches the bearer token, a reducer-style session
// store with rehydration, and a role-aware route guard. The guard duplicates
// the server-side role check on purpose: the server remains the security
// boundary, the client check only decides what to render.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shelfwise/shelfwise/internal/domain"
)

// APIError is a structured error response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%q", e.Status, e.Message)
}

// API is the HTTP client for the shelfwise server. The bearer token is read
// from the token source at request-build time; any 401 response triggers the
// unauthorized hook so the session store can force a local logout.
type API struct {
	baseURL    string
	httpClient *http.Client

	tokenSource    func() string
	onUnauthorized func()
}

// NewAPI creates an API client for the given base URL.
func NewAPI(baseURL string) *API {
	return &API{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type authPayload struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login calls POST /auth/login.
func (a *API) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	var result struct {
		Data authPayload `json:"data"`
	}
	err := a.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return "", nil, err
	}
	return result.Data.Token, result.Data.User, nil
}

// Register calls POST /auth/register.
func (a *API) Register(ctx context.Context, email, password, role string) (string, *domain.User, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	if role != "" {
		body["role"] = role
	}

	var result struct {
		Data authPayload `json:"data"`
	}
	if err := a.do(ctx, http.MethodPost, "/api/v1/auth/register", body, &result); err != nil {
		return "", nil, err
	}
	return result.Data.Token, result.Data.User, nil
}

// GetProfile calls GET /auth/me.
func (a *API) GetProfile(ctx context.Context) (*domain.User, error) {
	var result struct {
		Data struct {
			User *domain.User `json:"user"`
		} `json:"data"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &result); err != nil {
		return nil, err
	}
	return result.Data.User, nil
}

// Logout calls POST /auth/logout. The call is best-effort: tokens are
// stateless server-side, so a failure here never blocks the local reset.
func (a *API) Logout(ctx context.Context) error {
	return a.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

func (a *API) do(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	authenticated := false
	if a.tokenSource != nil {
		if token := a.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			authenticated = true
		}
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// A rejected token anywhere means the session is dead: treat it like an
	// explicit logout. Unauthenticated requests (login itself) are exempt.
	if resp.StatusCode == http.StatusUnauthorized && authenticated && a.onUnauthorized != nil {
		a.onUnauthorized()
	}

	if resp.StatusCode >= 400 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: decodeErrorMessage(resp.Body),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func decodeErrorMessage(r io.Reader) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return "unknown error"
	}
	return envelope.Error.Message
}
