// Package directory wraps the remote user directory API. Every operation is
// a single request/response cycle: no retries, no batching, no caching. The
// directory is the sole source of truth for user records; callers only ever
// hold transient copies.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avolkov/userboard/internal/metrics"
	"github.com/avolkov/userboard/internal/models"
	"github.com/rs/zerolog/log"
)

// Client defines the operations the views need from the remote directory.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	ListUsers(ctx context.Context, page int) (models.UserPage, error)
	GetUser(ctx context.Context, id int) (models.User, error)
	UpdateUser(ctx context.Context, id int, draft models.FormDraft) (models.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// HTTPClient is the Client implementation over plain JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// New creates a directory client for the given base URL, e.g.
// "https://reqres.in/api".
func New(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for an opaque session token. Any non-2xx
// response collapses into ErrLoginFailed.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrLoginFailed
	}

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("failed to encode login request: %w", err)
	}

	resp, err := c.do(ctx, "login", http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return "", ErrLoginFailed
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return "", ErrLoginFailed
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil || lr.Token == "" {
		return "", ErrLoginFailed
	}
	return lr.Token, nil
}

// ListUsers fetches one page of users. Pages below 1 are rejected by the
// caller; the directory reports the total page count with every page.
func (c *HTTPClient) ListUsers(ctx context.Context, page int) (models.UserPage, error) {
	url := fmt.Sprintf("%s/users?page=%d", c.baseURL, page)
	resp, err := c.do(ctx, "list_users", http.MethodGet, url, nil)
	if err != nil {
		return models.UserPage{}, &FetchError{}
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return models.UserPage{}, &FetchError{}
	}

	var pageData models.UserPage
	if err := json.NewDecoder(resp.Body).Decode(&pageData); err != nil {
		return models.UserPage{}, &FetchError{}
	}
	return pageData, nil
}

type userEnvelope struct {
	Data models.User `json:"data"`
}

// GetUser fetches a single user by ID.
func (c *HTTPClient) GetUser(ctx context.Context, id int) (models.User, error) {
	url := fmt.Sprintf("%s/users/%d", c.baseURL, id)
	resp, err := c.do(ctx, "get_user", http.MethodGet, url, nil)
	if err != nil {
		return models.User{}, &FetchError{ID: id}
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return models.User{}, &FetchError{ID: id}
	}

	var env userEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return models.User{}, &FetchError{ID: id}
	}
	return env.Data, nil
}

type updateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// UpdateUser sends the edited fields and returns the directory's echo of the
// updated record.
func (c *HTTPClient) UpdateUser(ctx context.Context, id int, draft models.FormDraft) (models.User, error) {
	body, err := json.Marshal(updateRequest{
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Email:     draft.Email,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("failed to encode update request: %w", err)
	}

	url := fmt.Sprintf("%s/users/%d", c.baseURL, id)
	resp, err := c.do(ctx, "update_user", http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return models.User{}, &UpdateError{ID: id}
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return models.User{}, &UpdateError{ID: id}
	}

	var updated models.User
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return models.User{}, &UpdateError{ID: id}
	}
	// The directory echoes the fields without the id; keep it stable.
	updated.ID = id
	return updated, nil
}

// DeleteUser removes a user by ID. A 200 or 204 both count as success.
func (c *HTTPClient) DeleteUser(ctx context.Context, id int) error {
	url := fmt.Sprintf("%s/users/%d", c.baseURL, id)
	resp, err := c.do(ctx, "delete_user", http.MethodDelete, url, nil)
	if err != nil {
		return &DeleteError{ID: id}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if !success(resp.StatusCode) {
		return &DeleteError{ID: id}
	}
	return nil
}

// do issues a single request and records its outcome. The caller's context
// rides on the request, so navigating away from a page cancels the upstream
// call with it.
func (c *HTTPClient) do(ctx context.Context, operation, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		metrics.ObserveDirectoryRequest(operation, "error", elapsed)
		log.Warn().Err(err).Str("operation", operation).Msg("Directory request failed")
		return nil, err
	}

	outcome := "success"
	if !success(resp.StatusCode) {
		outcome = "failure"
		log.Warn().Int("status", resp.StatusCode).Str("operation", operation).Msg("Directory request rejected")
	}
	metrics.ObserveDirectoryRequest(operation, outcome, elapsed)
	return resp, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}
