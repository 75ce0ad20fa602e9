package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"task-dashboard/internal/domain"
	"task-dashboard/internal/http/dto"
	"task-dashboard/internal/http/response"
	"task-dashboard/internal/registry"
	"task-dashboard/internal/report"
	"task-dashboard/internal/view"
)

type AdminRegistry interface {
	Assign(req registry.AssignRequest) (domain.Task, error)
	Tasks() []domain.Task
	Employees() []domain.Employee
	Summary() domain.Summary
}

type ReportExporter interface {
	Export(format string) ([]byte, error)
}

type AdminHandler struct {
	logger   *logrus.Logger
	registry AdminRegistry
	exporter ReportExporter
	renderer *view.Renderer
}

func NewAdminHandler(logger *logrus.Logger, reg AdminRegistry, exporter ReportExporter, renderer *view.Renderer) *AdminHandler {
	return &AdminHandler{
		logger:   logger,
		registry: reg,
		exporter: exporter,
		renderer: renderer,
	}
}

// GET /
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	page := view.NewAdminPage(h.registry.Tasks(), h.registry.Employees())
	renderHTML(w, r, h.logger, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.Admin(buf, page)
	})
}

// POST /assign
//
// Incomplete forms are ignored; the browser always lands back on the dashboard.
func (h *AdminHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	employeeID, _ := strconv.ParseInt(r.PostFormValue("assigned_to"), 10, 64)
	_, err := h.registry.Assign(registry.AssignRequest{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Deadline:    r.PostFormValue("deadline"),
		EmployeeID:  employeeID,
	})
	if err != nil && !errors.Is(err, registry.ErrInvalidInput) {
		h.logger.WithContext(r.Context()).WithError(err).Error("assign task")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GET /api/admin/tasks
func (h *AdminHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks := h.registry.Tasks()

	names := make(map[int64]string)
	for _, e := range h.registry.Employees() {
		names[e.ID] = e.Name
	}

	resp := dto.TaskListResponse{
		Tasks:   make([]dto.TaskResponse, 0, len(tasks)),
		Summary: domain.Summarize(tasks),
	}
	for _, t := range tasks {
		tr := dto.NewTaskResponse(t)
		tr.Assignee = names[t.AssignedTo]
		resp.Tasks = append(resp.Tasks, tr)
	}

	response.JSON(w, http.StatusOK, resp)
}

// POST /api/admin/tasks
func (h *AdminHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.registry.Assign(registry.AssignRequest{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		EmployeeID:  req.AssignedTo,
	})
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrInvalidInput):
			response.Error(w, http.StatusBadRequest, registry.ErrInvalidInput.Error())
		default:
			response.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	response.JSON(w, http.StatusCreated, dto.NewTaskResponse(task))
}

// GET /api/admin/employees
func (h *AdminHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.registry.Employees())
}

// GET /api/admin/summary
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.registry.Summary())
}

// GET /api/admin/report?format=json|csv|pdf
func (h *AdminHandler) Report(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")

	body, err := h.exporter.Export(format)
	if err != nil {
		if errors.Is(err, report.ErrUnknownFormat) {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithContext(r.Context()).WithError(err).Error("export report")
		response.Error(w, http.StatusInternalServerError, "failed building report")
		return
	}

	w.Header().Set("Content-Type", report.ContentType(format))
	if format == "csv" || format == "pdf" {
		w.Header().Set("Content-Disposition", "attachment; filename=tasks."+format)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
