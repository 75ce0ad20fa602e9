package store

import (
	"context"
	"errors"

	"task-dashboard/internal/domain"
)

var (
	ErrNotFound = errors.New("task not found")
	ErrConflict = errors.New("task already exists")
)

// TaskStore backs the development task service.
type TaskStore interface {
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	Get(ctx context.Context, id int64) (domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) (domain.Task, error)
}
