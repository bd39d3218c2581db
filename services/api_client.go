package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vibin_client/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Named routes of the REST backend contract
const (
	RouteListUsers = "listUsers"
	RouteLikeUser  = "likeUser"
)

// BackendAPI is the part of the REST backend the swipe workflow talks to.
type BackendAPI interface {
	ListUsers(ctx context.Context, limit int) ([]models.RawUser, error)
	LikeUser(ctx context.Context, targetID string) (*models.LikeResponse, error)
}

// NewBackendRouter declares the backend endpoints as named mux routes. The
// client builds request paths from it; test servers attach handlers to it.
func NewBackendRouter() *mux.Router {
	r := mux.NewRouter()
	r.Methods(http.MethodGet).Path("/users").Name(RouteListUsers)
	r.Methods(http.MethodPost).Path("/users/{targetId}/like").Name(RouteLikeUser)
	return r
}

// APIClient calls the REST backend on behalf of the current session.
type APIClient struct {
	BaseURL string
	HTTP    *http.Client
	Auth    AuthProvider
	routes  *mux.Router
}

// NewAPIClient creates a client whose transport is traced with otelhttp.
func NewAPIClient(baseURL string, auth AuthProvider, timeout time.Duration) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Auth:   auth,
		routes: NewBackendRouter(),
	}
}

// ListUsers fetches a batch of raw user records: GET /users?limit=N
func (c *APIClient) ListUsers(ctx context.Context, limit int) ([]models.RawUser, error) {
	path, err := c.routePath(RouteListUsers)
	if err != nil {
		return nil, err
	}
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}

	var users []models.RawUser
	if err := c.do(ctx, http.MethodGet, path+"?"+query.Encode(), "", &users); err != nil {
		return nil, err
	}
	log.Printf("🔍 Fetched %d raw users (limit %d)", len(users), limit)
	return users, nil
}

// LikeUser records a like for targetID: POST /users/{targetId}/like
func (c *APIClient) LikeUser(ctx context.Context, targetID string) (*models.LikeResponse, error) {
	path, err := c.routePath(RouteLikeUser, "targetId", url.PathEscape(targetID))
	if err != nil {
		return nil, err
	}

	var resp models.LikeResponse
	if err := c.do(ctx, http.MethodPost, path, uuid.NewString(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) routePath(name string, pairs ...string) (string, error) {
	route := c.routes.Get(name)
	if route == nil {
		return "", fmt.Errorf("unknown backend route '%s'", name)
	}
	u, err := route.URLPath(pairs...)
	if err != nil {
		return "", fmt.Errorf("failed to build path for '%s': %w", name, err)
	}
	return u.Path, nil
}

func (c *APIClient) do(ctx context.Context, method, path, requestID string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	if c.Auth != nil {
		user, err := c.Auth.CurrentUser(ctx)
		if err != nil {
			return fmt.Errorf("failed to read session: %w", err)
		}
		if user != nil && user.Token != "" {
			req.Header.Set("Authorization", "Bearer "+user.Token)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
