package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/tempora/tempora/internal/core/model"
	"github.com/tempora/tempora/internal/util"
)

const defaultTimeout = 30 * time.Second

// API is the remote session collaborator contract. The store depends on this
// interface, never on the HTTP client directly, so tests can inject a fake.
type API interface {
	ListEntries(ctx context.Context) ([]*model.TimeEntry, error)
	ActiveEntry(ctx context.Context) (*model.TimeEntry, error)
	CreateEntry(ctx context.Context, projectID, description string, startTime time.Time) (*model.TimeEntry, error)
	StopEntry(ctx context.Context, id string) (*model.TimeEntry, error)
	UpdateEntry(ctx context.Context, id string, patch model.EntryPatch) (*model.TimeEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	ListProjects(ctx context.Context) ([]*model.Project, error)
}

// Client talks to the time-tracking service over its v1 REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new API client for the given server.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

func (c *Client) ListEntries(ctx context.Context) ([]*model.TimeEntry, error) {
	var dtos []timeEntryDTO
	if err := c.do(ctx, "list entries", http.MethodGet, "/api/v1/time-entries/", nil, &dtos); err != nil {
		return nil, err
	}
	entries := make([]*model.TimeEntry, 0, len(dtos))
	for i := range dtos {
		entries = append(entries, dtos[i].toModel())
	}
	return entries, nil
}

// ActiveEntry returns the currently running entry, or nil when the server
// reports none.
func (c *Client) ActiveEntry(ctx context.Context) (*model.TimeEntry, error) {
	var dto timeEntryDTO
	err := c.do(ctx, "get active entry", http.MethodGet, "/api/v1/time-entries/active", nil, &dto)
	if err != nil {
		var notFound *model.NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return dto.toModel(), nil
}

func (c *Client) CreateEntry(ctx context.Context, projectID, description string, startTime time.Time) (*model.TimeEntry, error) {
	req := createEntryRequest{
		ProjectID:   projectID,
		Description: description,
	}
	if !startTime.IsZero() {
		req.StartTime = &startTime
	}

	var dto timeEntryDTO
	if err := c.do(ctx, "create entry", http.MethodPost, "/api/v1/time-entries/", req, &dto); err != nil {
		return nil, err
	}
	return dto.toModel(), nil
}

func (c *Client) StopEntry(ctx context.Context, id string) (*model.TimeEntry, error) {
	var dto timeEntryDTO
	path := fmt.Sprintf("/api/v1/time-entries/%s/stop", id)
	if err := c.do(ctx, "stop entry", http.MethodPost, path, nil, &dto); err != nil {
		return nil, err
	}
	return dto.toModel(), nil
}

func (c *Client) UpdateEntry(ctx context.Context, id string, patch model.EntryPatch) (*model.TimeEntry, error) {
	var dto timeEntryDTO
	path := fmt.Sprintf("/api/v1/time-entries/%s", id)
	if err := c.do(ctx, "update entry", http.MethodPut, path, patchToRequest(patch), &dto); err != nil {
		return nil, err
	}
	return dto.toModel(), nil
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/time-entries/%s", id)
	return c.do(ctx, "delete entry", http.MethodDelete, path, nil, nil)
}

func (c *Client) ListProjects(ctx context.Context) ([]*model.Project, error) {
	var dtos []projectDTO
	if err := c.do(ctx, "list projects", http.MethodGet, "/api/v1/projects/", nil, &dtos); err != nil {
		return nil, err
	}
	projects := make([]*model.Project, 0, len(dtos))
	for i := range dtos {
		projects = append(projects, dtos[i].toModel())
	}
	return projects, nil
}

// do performs one API round trip: encode body, attach auth and request id,
// map the response status to a typed error, decode into out when non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return &model.RemoteError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &model.RemoteError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		util.LogDebugf("Remote %s failed: %v", op, err)
		return &model.RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(op, resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.RemoteError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return &model.RemoteError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// statusError maps HTTP failure statuses to the typed errors the store
// surfaces: 404 means the entry is unknown, 409 means another entry is
// already running, anything else is a plain remote failure.
func (c *Client) statusError(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := string(data)

	var apiErr apiError
	if err := sonic.Unmarshal(data, &apiErr); err == nil && apiErr.Detail != "" {
		detail = apiErr.Detail
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &model.NotFoundError{EntryID: detail}
	case http.StatusConflict:
		return &model.ConflictError{ActiveID: detail}
	default:
		return &model.RemoteError{Op: op, StatusCode: resp.StatusCode, Body: detail}
	}
}
