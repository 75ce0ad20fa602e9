package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"task-dashboard/internal/domain"
	"task-dashboard/internal/service"
	"task-dashboard/internal/store/memory"
	"task-dashboard/internal/taskclient"
	"task-dashboard/internal/taskservice"
	"task-dashboard/internal/tasks"
	"task-dashboard/internal/workerpool"
)

type recordedWrite struct {
	path   string
	status string
}

// recorder captures every PUT that reaches the task service.
type recorder struct {
	mu     sync.Mutex
	writes []recordedWrite
	next   http.Handler
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPut {
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &payload)

		rec.mu.Lock()
		rec.writes = append(rec.writes, recordedWrite{path: r.URL.Path, status: payload.Status})
		rec.mu.Unlock()

		r.Body = io.NopCloser(bytes.NewReader(body))
	}
	rec.next.ServeHTTP(w, r)
}

func TestStartThenComplete_EndToEnd(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	st := memory.New()
	if _, err := st.Create(context.Background(), domain.Task{Title: "Task 1"}); err != nil {
		t.Fatalf("seed err=%v", err)
	}

	rec := &recorder{next: taskservice.NewRouter(logger, st)}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	client, err := taskclient.New(logger, srv.URL, time.Second)
	if err != nil {
		t.Fatalf("taskclient.New err=%v", err)
	}

	pool := workerpool.New(logger, 4)
	pool.Start(1)
	defer func() { _ = pool.Shutdown(context.Background()) }()

	svc, err := service.New(logger, client, tasks.New(logger, client), pool)
	if err != nil {
		t.Fatalf("service.New err=%v", err)
	}

	ctx := context.Background()

	snap, err := svc.Tasks(ctx, "employee-token")
	if err != nil {
		t.Fatalf("Tasks() err=%v", err)
	}
	if len(snap.Tasks) != 1 || snap.Tasks[0].Status != domain.StatusPending {
		t.Fatalf("initial tasks=%+v", snap.Tasks)
	}
	if len(domain.Actions(snap.Tasks[0].Status)) != 2 {
		t.Fatalf("pending task should offer Start and Complete")
	}

	started := svc.SetStatus(ctx, "employee-token", 1, domain.StatusInProgress)
	if !started.OK() {
		t.Fatalf("Start err=%v", started.Err)
	}
	if got := started.Snapshot.Tasks[0].Status; got != domain.StatusInProgress {
		t.Fatalf("after Start status=%s, want %s", got, domain.StatusInProgress)
	}

	completed := svc.SetStatus(ctx, "employee-token", 1, domain.StatusCompleted)
	if !completed.OK() {
		t.Fatalf("Complete err=%v", completed.Err)
	}

	final := completed.Snapshot.Tasks[0]
	if final.Status != domain.StatusCompleted {
		t.Fatalf("final status=%s, want %s", final.Status, domain.StatusCompleted)
	}
	if len(domain.Actions(final.Status)) != 0 {
		t.Fatalf("completed task should offer no actions")
	}
	if completed.Snapshot.Summary.Completed != 1 || completed.Snapshot.Summary.Total() != 1 {
		t.Fatalf("summary=%+v", completed.Snapshot.Summary)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	want := []recordedWrite{
		{path: "/tasks/1", status: "in-progress"},
		{path: "/tasks/1", status: "completed"},
	}
	if len(rec.writes) != len(want) {
		t.Fatalf("writes=%v, want %v", rec.writes, want)
	}
	for i := range want {
		if rec.writes[i] != want[i] {
			t.Fatalf("write[%d]=%v, want %v", i, rec.writes[i], want[i])
		}
	}
}

func TestStart_OnlyTargetTaskChanges(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	st := memory.New()
	for _, title := range []string{"A", "B", "C"} {
		_, _ = st.Create(context.Background(), domain.Task{Title: title})
	}

	srv := httptest.NewServer(taskservice.NewRouter(logger, st))
	defer srv.Close()

	client, _ := taskclient.New(logger, srv.URL, time.Second)
	pool := workerpool.New(logger, 4)
	pool.Start(1)
	defer func() { _ = pool.Shutdown(context.Background()) }()

	svc, _ := service.New(logger, client, tasks.New(logger, client), pool)

	res := svc.SetStatus(context.Background(), "tok", 2, domain.StatusInProgress)
	if !res.OK() {
		t.Fatalf("SetStatus err=%v", res.Err)
	}

	for _, task := range res.Snapshot.Tasks {
		want := domain.StatusPending
		if task.ID == 2 {
			want = domain.StatusInProgress
		}
		if task.Status != want {
			t.Fatalf("task %d status=%s, want %s", task.ID, task.Status, want)
		}
	}
}
