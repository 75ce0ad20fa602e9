package dto

import (
	"task-dashboard/internal/domain"
)

type AssignTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	AssignedTo  int64  `json:"assigned_to"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in-progress completed"`
}

type TaskResponse struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Deadline    domain.Date `json:"deadline"`
	AssignedTo  int64       `json:"assigned_to"`
	Status      string      `json:"status"`
	Assignee    string      `json:"assignee,omitempty"`
	Actions     []string    `json:"actions,omitempty"`
}

type TaskListResponse struct {
	Tasks   []TaskResponse `json:"tasks"`
	Summary domain.Summary `json:"summary"`
}

type StatusResultResponse struct {
	TaskID    int64          `json:"task_id"`
	Status    string         `json:"status"`
	Applied   bool           `json:"applied"`
	Retryable bool           `json:"retryable"`
	Error     string         `json:"error,omitempty"`
	Tasks     []TaskResponse `json:"tasks,omitempty"`
	Summary   domain.Summary `json:"summary"`
}

func NewTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		AssignedTo:  t.AssignedTo,
		Status:      string(t.Status),
	}
}

// NewEmployeeTasks includes the statuses each task can move to.
func NewEmployeeTasks(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp := NewTaskResponse(t)
		for _, a := range domain.Actions(t.Status) {
			resp.Actions = append(resp.Actions, string(a.Status))
		}
		out = append(out, resp)
	}
	return out
}
