package registry

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"task-dashboard/internal/domain"
)

func newRegistry() *Registry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewSeeded(logger)
}

func validRequest() AssignRequest {
	return AssignRequest{
		Title:       "Prepare slides",
		Description: "Quarterly review",
		Deadline:    "2025-10-01",
		EmployeeID:  2,
	}
}

func TestAssign_AppendsPendingTask(t *testing.T) {
	r := newRegistry()
	before := r.Tasks()

	task, err := r.Assign(validRequest())
	if err != nil {
		t.Fatalf("Assign() err=%v, want nil", err)
	}

	var maxID int64
	for _, prev := range before {
		if prev.ID > maxID {
			maxID = prev.ID
		}
	}
	if task.ID != maxID+1 {
		t.Fatalf("ID=%d, want %d", task.ID, maxID+1)
	}
	if task.Status != domain.StatusPending {
		t.Fatalf("Status=%s, want %s", task.Status, domain.StatusPending)
	}
	if task.Deadline.String() != "2025-10-01" || task.AssignedTo != 2 {
		t.Fatalf("task=%+v", task)
	}

	after := r.Tasks()
	if len(after) != len(before)+1 {
		t.Fatalf("len=%d, want %d", len(after), len(before)+1)
	}
	if after[len(after)-1] != task {
		t.Fatalf("last task=%+v, want %+v", after[len(after)-1], task)
	}
}

func TestAssign_KeepsValuesAsEntered(t *testing.T) {
	r := newRegistry()

	req := validRequest()
	req.Title = "   "
	req.Description = "  Padded  "

	task, err := r.Assign(req)
	if err != nil {
		t.Fatalf("Assign() err=%v, want nil", err)
	}
	if task.Title != "   " || task.Description != "  Padded  " {
		t.Fatalf("task=%+v", task)
	}
	if got := len(r.Tasks()); got != 4 {
		t.Fatalf("len=%d, want 4", got)
	}
}

func TestAssign_EmptyFieldIsNoop(t *testing.T) {
	cases := map[string]func(*AssignRequest){
		"title":       func(r *AssignRequest) { r.Title = "" },
		"description": func(r *AssignRequest) { r.Description = "" },
		"deadline":    func(r *AssignRequest) { r.Deadline = "" },
		"bad date":    func(r *AssignRequest) { r.Deadline = "tomorrow" },
		"employee":    func(r *AssignRequest) { r.EmployeeID = 0 },
	}

	for name, mutate := range cases {
		r := newRegistry()
		before := r.Tasks()

		req := validRequest()
		mutate(&req)

		_, err := r.Assign(req)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: err=%v, want %v", name, err, ErrInvalidInput)
		}
		if got := r.Tasks(); len(got) != len(before) {
			t.Fatalf("%s: len=%d, want %d", name, len(got), len(before))
		}
	}
}

func TestAssign_UnknownEmployeeAccepted(t *testing.T) {
	r := newRegistry()

	req := validRequest()
	req.EmployeeID = 99

	task, err := r.Assign(req)
	if err != nil {
		t.Fatalf("Assign() err=%v, want nil", err)
	}
	if _, ok := r.Employee(task.AssignedTo); ok {
		t.Fatal("Employee(99) ok=true, want false")
	}
}

func TestSummary_SumsToTotal(t *testing.T) {
	r := newRegistry()

	s := r.Summary()
	if s.Pending != 1 || s.InProgress != 1 || s.Completed != 1 {
		t.Fatalf("Summary()=%+v", s)
	}

	_, _ = r.Assign(validRequest())
	s = r.Summary()
	if s.Total() != len(r.Tasks()) {
		t.Fatalf("Total()=%d, want %d", s.Total(), len(r.Tasks()))
	}
	if s.Pending != 2 {
		t.Fatalf("Pending=%d, want 2", s.Pending)
	}
}

func TestEmployees(t *testing.T) {
	r := newRegistry()

	emps := r.Employees()
	if len(emps) != 2 {
		t.Fatalf("len=%d, want 2", len(emps))
	}
	jane, ok := r.Employee(2)
	if !ok || jane.Name != "Jane Smith" || jane.Active {
		t.Fatalf("Employee(2)=%+v ok=%v", jane, ok)
	}
}

func TestTasks_ReturnsCopy(t *testing.T) {
	r := newRegistry()

	list := r.Tasks()
	list[0].Title = "mutated"

	if r.Tasks()[0].Title == "mutated" {
		t.Fatal("Tasks() exposes internal slice")
	}
}

func TestAssign_Concurrent(t *testing.T) {
	r := newRegistry()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = r.Assign(validRequest())
		}()
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, task := range r.Tasks() {
		if seen[task.ID] {
			t.Fatalf("duplicate id %d", task.ID)
		}
		seen[task.ID] = true
	}
	if len(seen) != 3+n {
		t.Fatalf("len=%d, want %d", len(seen), 3+n)
	}
}
