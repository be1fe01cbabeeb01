// Package client is a Go consumer of the portfolio API. It mirrors what
// the public site does: unauthenticated reads of every section, a
// partial-failure-tolerant aggregate fetch, and a session watcher for
// the admin token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tmnguyen/portfolio-api/internal/domain/education"
	"github.com/tmnguyen/portfolio-api/internal/domain/experience"
	"github.com/tmnguyen/portfolio-api/internal/domain/profile"
	"github.com/tmnguyen/portfolio-api/internal/domain/project"
	"github.com/tmnguyen/portfolio-api/internal/domain/skill"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %s (status %d)", e.Method, e.Path, e.Message, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func isStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken attaches a bearer token to every request. Reads work
// without one; mutations and /api/auth/session require it.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode}
		var body struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &body) == nil {
			apiErr.Message = body.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// GetProfile returns nil without error when no profile exists yet; the
// server answers JSON null in that case.
func (c *Client) GetProfile(ctx context.Context) (*profile.Profile, error) {
	var p *profile.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Client) GetSkills(ctx context.Context) ([]*skill.Skill, error) {
	var out []*skill.Skill
	if err := c.do(ctx, http.MethodGet, "/api/skills", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEducation(ctx context.Context) ([]*education.Entry, error) {
	var out []*education.Entry
	if err := c.do(ctx, http.MethodGet, "/api/education", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetExperience(ctx context.Context) ([]*experience.Entry, error) {
	var out []*experience.Entry
	if err := c.do(ctx, http.MethodGet, "/api/experience", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProjects(ctx context.Context) ([]*project.Project, error) {
	var out []*project.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login exchanges credentials for a bearer token and installs it on
// the client.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return "", err
	}
	c.token = out.AccessToken
	return out.AccessToken, nil
}

// Logout revokes the current session server-side and drops the token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}
