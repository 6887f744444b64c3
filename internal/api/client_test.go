package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"tada-cli/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestCheckAuth(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{"authenticated", 200, `{"success":true}`, true},
		{"explicit false", 200, `{"success":false}`, false},
		{"non-2xx", 401, `{"success":true}`, false},
		{"malformed body", 200, `not json`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/auth/check-auth" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			if got := c.CheckAuth(context.Background()); got != tc.want {
				t.Fatalf("CheckAuth = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCheckAuthServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, err := New(srv.URL, discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.CheckAuth(context.Background()) {
		t.Fatal("expected fail-closed false when server is unreachable")
	}
}

func TestListTodos(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"todos":[{"_id":"1","title":"A","description":"B"}]}`))
	}))
	todos, err := c.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != "1" || todos[0].Title != "A" || todos[0].Description != "B" {
		t.Fatalf("unexpected todos: %+v", todos)
	}
}

func TestListTodosMalformed(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no todos field", `{"message":"hi"}`},
		{"todos not a list", `{"todos":"nope"}`},
		{"not json", `<html>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			_, err := c.ListTodos(context.Background())
			if err == nil {
				t.Fatal("expected error for malformed list body")
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected DecodeError, got %T: %v", err, err)
			}
		})
	}
}

func TestCreateTodo(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing X-Request-Id")
		}
		w.Write([]byte(`{"message":"Todo created","todo":{"_id":"1","title":"A","description":"B"}}`))
	}))
	res, err := c.CreateTodo(context.Background(), "A", "B")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if !res.OK || res.Message != "Todo created" {
		t.Fatalf("unexpected result: %+v", res.Result)
	}
	if res.Todo.ID != "1" {
		t.Fatalf("expected server-assigned id, got %+v", res.Todo)
	}
}

func TestRejectionCarriesServerMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Todo already exists"}`))
	}))
	res, err := c.UpdateTodo(context.Background(), "1", "A")
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if res.OK {
		t.Fatal("expected OK=false for non-2xx")
	}
	if res.Message != "Todo already exists" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestLoginSendsFormAndKeepsCookie(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
			w.Write([]byte(`{"message":"Welcome"}`))
		case "/api/auth/check-auth":
			if ck, err := r.Cookie("session"); err != nil || ck.Value != "abc" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false}`))
				return
			}
			w.Write([]byte(`{"success":true}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	res, err := c.Login(context.Background(), model.LoginForm{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !res.OK || res.Message != "Welcome" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !c.CheckAuth(context.Background()) {
		t.Fatal("expected cookie from login to authenticate the next call")
	}
}

func TestPersistCookiesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "xyz", Path: "/"})
			w.Write([]byte(`{"message":"Welcome"}`))
		case "/api/auth/check-auth":
			if ck, err := r.Cookie("session"); err == nil && ck.Value == "xyz" {
				w.Write([]byte(`{"success":true}`))
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false}`))
		}
	})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	c1, err := New(srv.URL, discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c1.PersistCookies(path); err != nil {
		t.Fatalf("PersistCookies: %v", err)
	}
	if _, err := c1.Login(context.Background(), model.LoginForm{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// A second client (fresh process) picks up the saved cookie.
	c2, err := New(srv.URL, discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c2.PersistCookies(path); err != nil {
		t.Fatalf("PersistCookies: %v", err)
	}
	if !c2.CheckAuth(context.Background()) {
		t.Fatal("expected persisted cookie to authenticate a new client")
	}
}
