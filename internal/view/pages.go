package view

import (
	"task-dashboard/internal/domain"
)

const deadlineLayout = "Jan 2, 2006"

var statusClass = map[domain.TaskStatus]string{
	domain.StatusPending:    "badge-pending",
	domain.StatusInProgress: "badge-in-progress",
	domain.StatusCompleted:  "badge-completed",
}

type Profile struct {
	Name string
	Role string
}

type AdminRow struct {
	Task        domain.Task
	Deadline    string
	Assignee    string
	StatusClass string
}

type AdminPage struct {
	Profile        Profile
	TotalEmployees int
	TotalTasks     int
	Chart          Chart
	Employees      []domain.Employee
	Rows           []AdminRow
}

func NewAdminPage(tasks []domain.Task, employees []domain.Employee) AdminPage {
	names := make(map[int64]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	rows := make([]AdminRow, 0, len(tasks))
	for _, t := range tasks {
		assignee, ok := names[t.AssignedTo]
		if !ok {
			assignee = "N/A"
		}
		rows = append(rows, AdminRow{
			Task:        t,
			Deadline:    formatDeadline(t.Deadline),
			Assignee:    assignee,
			StatusClass: statusClass[t.Status],
		})
	}

	return AdminPage{
		Profile:        Profile{Name: "Admin", Role: "Admin"},
		TotalEmployees: len(employees),
		TotalTasks:     len(tasks),
		Chart:          PieChart(domain.Summarize(tasks), AdminPalette, 50),
		Employees:      employees,
		Rows:           rows,
	}
}

type EmployeeRow struct {
	Task     domain.Task
	Deadline string
	Actions  []domain.Action
}

// Notice reports the outcome of the last status change.
type Notice struct {
	Message string
	Retry   bool
	TaskID  int64
	Status  domain.TaskStatus
}

type EmployeePage struct {
	Profile    Profile
	TotalTasks int
	Chart      Chart
	Rows       []EmployeeRow
	Notice     *Notice
	// Stale is set when Rows come from an earlier fetch because the latest one failed.
	Stale bool
}

func NewEmployeePage(tasks []domain.Task) EmployeePage {
	rows := make([]EmployeeRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, EmployeeRow{
			Task:     t,
			Deadline: formatDeadline(t.Deadline),
			Actions:  domain.Actions(t.Status),
		})
	}

	return EmployeePage{
		Profile:    Profile{Name: "John Doe", Role: "Employee"},
		TotalTasks: len(tasks),
		Chart:      PieChart(domain.Summarize(tasks), EmployeePalette, 0),
		Rows:       rows,
	}
}

func formatDeadline(d domain.Date) string {
	if d.IsZero() {
		return "N/A"
	}
	return d.Format(deadlineLayout)
}
