package taskclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"task-dashboard/internal/domain"
)

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(logrus.New(), srv.URL, time.Second)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	return c
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(logrus.New(), "localhost", time.Second)
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("New() err=%v, want %v", err, ErrInvalidURL)
	}
}

func TestListTasks_SendsRawToken(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/tasks" {
			t.Errorf("request=%s %s, want GET /tasks", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "secret" {
			t.Errorf("Authorization=%q, want %q", got, "secret")
		}
		_, _ = io.WriteString(w, `[{"id":1,"title":"T1","status":"pending","deadline":"2025-09-01","assigned_to":1},{"id":2,"title":"T2","status":"completed"}]`)
	})

	tasks, err := c.ListTasks(context.Background(), "secret")
	if err != nil {
		t.Fatalf("ListTasks() err=%v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len=%d, want 2", len(tasks))
	}
	if tasks[0].Status != domain.StatusPending || tasks[0].Deadline.String() != "2025-09-01" {
		t.Fatalf("tasks[0]=%+v", tasks[0])
	}
}

func TestListTasks_EmptyCredentialSendsNoHeader(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Errorf("Authorization header present, want none")
		}
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.ListTasks(context.Background(), "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("ListTasks() err=%v, want %v", err, ErrUnauthorized)
	}
}

func TestUpdateStatus_SendsBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/tasks/7" {
			t.Errorf("request=%s %s, want PUT /tasks/7", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode err=%v", err)
		}
		if body["status"] != "in-progress" {
			t.Errorf("status=%q, want in-progress", body["status"])
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := c.UpdateStatus(context.Background(), "tok", 7, domain.StatusInProgress); err != nil {
		t.Fatalf("UpdateStatus() err=%v", err)
	}
}

func TestDo_StatusErrors(t *testing.T) {
	tests := []struct {
		code         int
		unauthorized bool
		temporary    bool
	}{
		{http.StatusUnauthorized, true, false},
		{http.StatusForbidden, true, false},
		{http.StatusNotFound, false, false},
		{http.StatusBadGateway, false, true},
	}

	for _, tt := range tests {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tt.code)
		})

		err := c.UpdateStatus(context.Background(), "tok", 1, domain.StatusCompleted)
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("code %d: err=%v, want *StatusError", tt.code, err)
		}
		if se.Code != tt.code {
			t.Fatalf("Code=%d, want %d", se.Code, tt.code)
		}
		if errors.Is(err, ErrUnauthorized) != tt.unauthorized {
			t.Fatalf("code %d: errors.Is(ErrUnauthorized)=%v, want %v", tt.code, !tt.unauthorized, tt.unauthorized)
		}
		if se.Temporary() != tt.temporary {
			t.Fatalf("code %d: Temporary()=%v, want %v", tt.code, se.Temporary(), tt.temporary)
		}
	}
}

func TestListTasks_BadJSON(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"tasks":`)
	})

	if _, err := c.ListTasks(context.Background(), "tok"); err == nil {
		t.Fatal("ListTasks() err=nil, want decode error")
	}
}

func TestListTasks_SkipsMalformedRows(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[
			{"id":"64f0a","title":"bad id","status":"pending"},
			{"id":1,"title":"T1","status":"pending","assigned_to":"1","deadline":"09/01/2025"},
			{"id":"2","title":"T2","status":"in-progress","assigned_to":2,"deadline":"2025-09-03"}
		]`)
	})

	tasks, err := c.ListTasks(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ListTasks() err=%v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len=%d, want 2", len(tasks))
	}
	if tasks[0].ID != 1 || tasks[0].AssignedTo != 1 || !tasks[0].Deadline.IsZero() {
		t.Fatalf("tasks[0]=%+v", tasks[0])
	}
	if tasks[1].ID != 2 || tasks[1].AssignedTo != 2 || tasks[1].Deadline.String() != "2025-09-03" {
		t.Fatalf("tasks[1]=%+v", tasks[1])
	}
}

func TestListTasks_ContextCanceled(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ListTasks(ctx, "tok"); !errors.Is(err, context.Canceled) {
		t.Fatalf("ListTasks() err=%v, want %v", err, context.Canceled)
	}
}
