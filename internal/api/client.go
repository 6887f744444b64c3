package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"tada-cli/internal/model"

	"github.com/google/uuid"
)

// Client talks to the remote todo API. Credentials travel as cookies held in
// the jar; callers never see or store them.
type Client struct {
	origin string
	http   *http.Client
	log    *slog.Logger

	// jarPath, when set, persists the jar's cookies across processes so
	// scriptable subcommands share one login. Empty for in-memory only.
	jarPath string
}

// New builds a client for the given origin (scheme://host[:port], no trailing
// slash required).
func New(origin string, log *slog.Logger) (*Client, error) {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		return nil, fmt.Errorf("api: origin is required (set TADA_ORIGIN or config.json origin)")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		origin: origin,
		http:   &http.Client{Jar: jar},
		log:    log,
	}, nil
}

// Origin returns the configured server origin.
func (c *Client) Origin() string { return c.origin }

// Result is the application-level outcome of a call whose response body
// parsed. OK reflects the transport status; Message is the server's text.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// CreateResult carries the server-assigned record for a successful create.
type CreateResult struct {
	Result
	Todo model.Todo `json:"todo"`
}

// CheckAuth reports whether the server considers the current cookie
// authenticated. Fail-closed: any transport or decode failure is false.
func (c *Client) CheckAuth(ctx context.Context) bool {
	var body struct {
		Success bool `json:"success"`
	}
	status, err := c.do(ctx, http.MethodGet, "/api/auth/check-auth", nil, &body)
	if err != nil {
		c.log.Debug("auth check failed", "err", err)
		return false
	}
	return status >= 200 && status < 300 && body.Success
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, form model.RegisterForm) (Result, error) {
	return c.messageCall(ctx, http.MethodPost, "/api/auth/register", form)
}

// Login authenticates; on success the server sets the session cookie.
func (c *Client) Login(ctx context.Context, form model.LoginForm) (Result, error) {
	return c.messageCall(ctx, http.MethodPost, "/api/auth/login", form)
}

// Logout invalidates the session server-side.
func (c *Client) Logout(ctx context.Context) (Result, error) {
	return c.messageCall(ctx, http.MethodGet, "/api/auth/logout", nil)
}

// ListTodos fetches the full list. A response whose body is not a well-formed
// todos list is an error; callers treat that as an empty list and log it.
func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var body struct {
		Todos []model.Todo `json:"todos"`
	}
	raw := json.RawMessage{}
	status, err := c.do(ctx, http.MethodGet, "/api/v1/todo", nil, &raw)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Todos == nil {
		return nil, &DecodeError{Op: "list todos", Err: fmt.Errorf("body has no todos list (status %d)", status)}
	}
	return body.Todos, nil
}

// CreateTodo posts a new record and returns the server's copy of it.
func (c *Client) CreateTodo(ctx context.Context, title, description string) (CreateResult, error) {
	var body struct {
		Message string     `json:"message"`
		Todo    model.Todo `json:"todo"`
	}
	req := map[string]string{"title": title, "description": description}
	status, err := c.do(ctx, http.MethodPost, "/api/v1/todo", req, &body)
	if err != nil {
		return CreateResult{}, err
	}
	return CreateResult{
		Result: Result{OK: status >= 200 && status < 300, Message: body.Message},
		Todo:   body.Todo,
	}, nil
}

// UpdateTodo replaces the title of one record.
func (c *Client) UpdateTodo(ctx context.Context, id, title string) (Result, error) {
	return c.messageCall(ctx, http.MethodPut, "/api/v1/todo/"+id, map[string]string{"title": title})
}

// DeleteTodo deletes one record.
func (c *Client) DeleteTodo(ctx context.Context, id string) (Result, error) {
	return c.messageCall(ctx, http.MethodDelete, "/api/v1/todo/"+id, nil)
}

// messageCall covers the endpoints whose useful payload is just {message}.
func (c *Client) messageCall(ctx context.Context, method, path string, reqBody any) (Result, error) {
	var body struct {
		Message string `json:"message"`
	}
	status, err := c.do(ctx, method, path, reqBody, &body)
	if err != nil {
		return Result{}, err
	}
	return Result{OK: status >= 200 && status < 300, Message: body.Message}, nil
}

// do performs one JSON round trip. A non-2xx status is NOT an error here; the
// caller branches on it (the server still sends a structured message). Errors
// are reserved for transport failures and unparsable bodies.
func (c *Client) do(ctx context.Context, method, path string, reqBody, out any) (int, error) {
	var rd io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return 0, &TransportError{Op: method + " " + path, Err: err}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.origin+path, rd)
	if err != nil {
		return 0, &TransportError{Op: method + " " + path, Err: err}
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return 0, &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &TransportError{Op: method + " " + path, Err: err}
	}
	c.log.Debug("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"dur", time.Since(start),
	)

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, &DecodeError{Op: method + " " + path, Err: err}
		}
	}
	if c.jarPath != "" {
		// Best-effort; a failed save only costs the next process a login.
		if err := c.saveCookies(); err != nil {
			c.log.Debug("cookie save failed", "err", err)
		}
	}
	return resp.StatusCode, nil
}
