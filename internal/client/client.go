// Package client talks to the todo HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rezkam/todos/internal/domain"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// APIError is a non-success response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("todo api: %d %s", e.Status, e.Message)
}

// todoJSON is the wire form of a todo.
type todoJSON struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

func (t todoJSON) toDomain() (*domain.Todo, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid createdAt %q for todo %s: %w", t.CreatedAt, t.ID, err)
	}
	return &domain.Todo{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   createdAt.UTC(),
	}, nil
}

type listResponse struct {
	Todos []todoJSON `json:"todos"`
	Total *int       `json:"total,omitempty"`
}

type todoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client is an HTTP client for the /todos resource.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New creates a client for the server at baseURL, e.g. http://localhost:8081.
// Requests are traced through the global OpenTelemetry provider.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// ListTodos returns every todo matching search, newest first.
func (c *Client) ListTodos(ctx context.Context, search string) ([]*domain.Todo, error) {
	query := url.Values{}
	query.Set("search", search)

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/todos?"+query.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	todos := make([]*domain.Todo, 0, len(resp.Todos))
	for _, t := range resp.Todos {
		todo, err := t.toDomain()
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, nil
}

// CreateTodo creates a todo and returns it as stored.
func (c *Client) CreateTodo(ctx context.Context, title, description string) (*domain.Todo, error) {
	var resp todoJSON
	if err := c.do(ctx, http.MethodPost, "/todos", todoRequest{Title: title, Description: description}, &resp); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return resp.toDomain()
}

// UpdateTodo replaces title and description of an existing todo.
// A missing todo yields an error matching domain.ErrTodoNotFound.
func (c *Client) UpdateTodo(ctx context.Context, id, title, description string) (*domain.Todo, error) {
	var resp todoJSON
	if err := c.do(ctx, http.MethodPatch, "/todos/"+url.PathEscape(id), todoRequest{Title: title, Description: description}, &resp); err != nil {
		return nil, fmt.Errorf("failed to update todo %s: %w", id, err)
	}
	return resp.toDomain()
}

// DeleteTodo removes a todo.
// A missing todo yields an error matching domain.ErrTodoNotFound.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete todo %s: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}

	if resp.StatusCode == http.StatusNotFound {
		return errors.Join(domain.ErrTodoNotFound, apiErr)
	}
	return apiErr
}
