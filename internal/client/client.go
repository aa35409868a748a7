// Package client talks to the tasks REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"advanced-todo/internal/core/domain"
)

const (
	DefaultBaseURL = "http://localhost:4000"
	defaultTimeout = 10 * time.Second
)

const (
	msgListFailed   = "could not load tasks"
	msgCreateFailed = "could not create task"
	msgUpdateFailed = "could not update task"
	msgDeleteFailed = "could not delete task"
	msgHealthFailed = "api is not healthy"
)

type Task struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type ListParams struct {
	Statuses []domain.TaskStatus
	Search   string
	Sort     domain.SortDirection
}

// Values encodes the params the way the list endpoint expects them.
// Empty statuses and blank search are omitted.
func (p ListParams) Values() url.Values {
	values := url.Values{}
	if len(p.Statuses) > 0 {
		statuses := make([]string, len(p.Statuses))
		for i, status := range p.Statuses {
			statuses[i] = string(status)
		}
		values.Set("status", strings.Join(statuses, ","))
	}
	if search := strings.TrimSpace(p.Search); search != "" {
		values.Set("search", search)
	}
	if p.Sort != "" {
		values.Set("sort", string(p.Sort))
	}
	return values
}

type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Patch is a partial update; nil fields are not sent.
type Patch struct {
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Status      *domain.TaskStatus `json:"status,omitempty"`
}

// APIError is returned for every non-2xx answer.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLanguage sets the Accept-Language header so server messages come back localized.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	language   string
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListTasks(ctx context.Context, params ListParams) ([]Task, error) {
	target := c.baseURL + "/api/tasks"
	if query := params.Values().Encode(); query != "" {
		target += "?" + query
	}

	var tasks []Task
	if err := c.do(ctx, http.MethodGet, target, nil, &tasks, msgListFailed); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, input CreateInput) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPost, c.baseURL+"/api/tasks", input, &task, msgCreateFailed)
	return task, err
}

func (c *Client) UpdateTask(ctx context.Context, id int64, patch Patch) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPatch, c.taskURL(id), patch, &task, msgUpdateFailed)
	return task, err
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	var ack struct {
		OK bool `json:"ok"`
	}
	return c.do(ctx, http.MethodDelete, c.taskURL(id), nil, &ack, msgDeleteFailed)
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.baseURL+"/health", nil, nil, msgHealthFailed)
}

func (c *Client) taskURL(id int64) string {
	return c.baseURL + "/api/tasks/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, target string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body, fallback)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the server's {"error": "..."} text, or returns fallback
// when the body is missing or not JSON.
func errorMessage(body io.Reader, fallback string) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Error == "" {
		return fallback
	}
	return payload.Error
}
