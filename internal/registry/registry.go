// Package registry is the administrator's local task list. It is never
// persisted and is unrelated to the data held by the task service.
package registry

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"task-dashboard/internal/domain"
)

type AssignRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Deadline    string `json:"deadline" validate:"required,datetime=2006-01-02"`
	EmployeeID  int64  `json:"assigned_to" validate:"required"`
}

type Registry struct {
	logger    *logrus.Logger
	validator *validator.Validate

	mu        sync.RWMutex
	tasks     []domain.Task
	employees []domain.Employee
}

func New(logger *logrus.Logger, tasks []domain.Task, employees []domain.Employee) *Registry {
	return &Registry{
		logger:    logger,
		validator: validator.New(),
		tasks:     append([]domain.Task(nil), tasks...),
		employees: append([]domain.Employee(nil), employees...),
	}
}

// Assign appends a pending task with id = current count + 1.
// Any empty field leaves the list unchanged. Values are stored as entered.
func (r *Registry) Assign(req AssignRequest) (domain.Task, error) {
	if err := r.validator.Struct(req); err != nil {
		r.logger.WithError(err).Debug("assign rejected")
		return domain.Task{}, ErrInvalidInput
	}

	deadline, err := domain.ParseDate(req.Deadline)
	if err != nil {
		return domain.Task{}, ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	task := domain.Task{
		ID:          int64(len(r.tasks)) + 1,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		AssignedTo:  req.EmployeeID,
		Status:      domain.StatusPending,
	}
	r.tasks = append(r.tasks, task)

	r.logger.WithFields(logrus.Fields{
		"task_id":     task.ID,
		"assigned_to": task.AssignedTo,
	}).Info("task assigned")

	return task, nil
}

func (r *Registry) Tasks() []domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.Task(nil), r.tasks...)
}

func (r *Registry) Employees() []domain.Employee {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.Employee(nil), r.employees...)
}

func (r *Registry) Employee(id int64) (domain.Employee, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.employees {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Employee{}, false
}

func (r *Registry) Summary() domain.Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.Summarize(r.tasks)
}
