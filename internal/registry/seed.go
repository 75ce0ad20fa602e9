package registry

import (
	"time"

	"github.com/sirupsen/logrus"

	"task-dashboard/internal/domain"
)

func SeedEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: 1, Name: "John Doe", Role: "employee", Active: true},
		{ID: 2, Name: "Jane Smith", Role: "employee", Active: false},
	}
}

func SeedTasks() []domain.Task {
	return []domain.Task{
		{ID: 1, Title: "Task 1", Description: "Desc 1", Deadline: domain.NewDate(2025, time.September, 1), AssignedTo: 1, Status: domain.StatusPending},
		{ID: 2, Title: "Task 2", Description: "Desc 2", Deadline: domain.NewDate(2025, time.September, 3), AssignedTo: 2, Status: domain.StatusInProgress},
		{ID: 3, Title: "Task 3", Description: "Desc 3", Deadline: domain.NewDate(2025, time.September, 5), AssignedTo: 1, Status: domain.StatusCompleted},
	}
}

// NewSeeded returns a registry holding the demo employees and tasks.
func NewSeeded(logger *logrus.Logger) *Registry {
	return New(logger, SeedTasks(), SeedEmployees())
}
