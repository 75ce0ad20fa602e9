package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"task-dashboard/internal/domain"
	"task-dashboard/internal/store"
)

type TaskStore struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]domain.Task
}

func New() *TaskStore {
	return &TaskStore{
		tasks: make(map[int64]domain.Task),
	}
}

func (ts *TaskStore) Create(_ context.Context, task domain.Task) (domain.Task, error) {
	id := atomic.AddInt64(&ts.nextID, 1)

	task.ID = id

	// status is not definable by the creator, so here we set its init value
	task.Status = domain.StatusPending

	ts.mu.Lock()
	ts.tasks[id] = task
	ts.mu.Unlock()

	return task, nil
}

func (ts *TaskStore) Get(_ context.Context, id int64) (domain.Task, error) {
	ts.mu.RLock()
	task, ok := ts.tasks[id]
	ts.mu.RUnlock()

	if !ok {
		return domain.Task{}, fmt.Errorf("get %d: %w", id, store.ErrNotFound)
	}
	return task, nil
}

// List returns tasks ordered by id.
func (ts *TaskStore) List(_ context.Context) ([]domain.Task, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(ts.tasks))
	for _, t := range ts.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	return tasks, nil
}

// UpdateStatus overwrites the status. Last writer wins.
func (ts *TaskStore) UpdateStatus(_ context.Context, id int64, status domain.TaskStatus) (domain.Task, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	task, ok := ts.tasks[id]
	if !ok {
		return domain.Task{}, fmt.Errorf("update %d: %w", id, store.ErrNotFound)
	}
	task.Status = status
	ts.tasks[id] = task

	return task, nil
}
