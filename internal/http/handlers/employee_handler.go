package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"task-dashboard/internal/auth"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/http/dto"
	"task-dashboard/internal/http/response"
	"task-dashboard/internal/service"
	"task-dashboard/internal/taskclient"
	"task-dashboard/internal/tasks"
	"task-dashboard/internal/view"
	"task-dashboard/internal/workerpool"
)

type EmployeeService interface {
	Tasks(ctx context.Context, cred auth.Credential) (tasks.Snapshot, error)
	LastTasks(cred auth.Credential) (tasks.Snapshot, bool)
	SetStatus(ctx context.Context, cred auth.Credential, id int64, status domain.TaskStatus) service.Result
}

type EmployeeHandler struct {
	logger    *logrus.Logger
	validator *validator.Validate
	service   EmployeeService
	renderer  *view.Renderer
}

func NewEmployeeHandler(logger *logrus.Logger, svc EmployeeService, renderer *view.Renderer) *EmployeeHandler {
	return &EmployeeHandler{
		logger:    logger,
		validator: validator.New(),
		service:   svc,
		renderer:  renderer,
	}
}

// GET /edashboard
//
// After a successful status change the redirect carries ?updated=<id>, and the
// page is built from the list fetched right after that write.
func (h *EmployeeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	cred := auth.FromContext(r.Context())

	if r.URL.Query().Get("updated") != "" {
		if snap, ok := h.service.LastTasks(cred); ok {
			page := view.NewEmployeePage(snap.Tasks)
			page.Notice = &view.Notice{Message: "Task updated."}
			h.render(w, r, page)
			return
		}
	}

	snap, err := h.service.Tasks(r.Context(), cred)
	if err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Warn("load employee tasks")
		h.renderEmployee(w, r, cred, &view.Notice{Message: loadMessage(err)})
		return
	}

	page := view.NewEmployeePage(snap.Tasks)
	h.render(w, r, page)
}

// POST /edashboard/tasks/{id}/status
//
// A successful change redirects back to the dashboard. Failures render the
// last known list with a notice, offering a retry when one could succeed.
func (h *EmployeeHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	cred := auth.FromContext(r.Context())

	id, ok := pathID(r)
	if !ok {
		h.renderEmployee(w, r, cred, &view.Notice{Message: "Unknown task."})
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderEmployee(w, r, cred, &view.Notice{Message: "Invalid request.", TaskID: id})
		return
	}

	status := domain.TaskStatus(r.PostFormValue("status"))
	res := h.service.SetStatus(r.Context(), cred, id, status)
	if res.OK() {
		http.Redirect(w, r, "/edashboard?updated="+strconv.FormatInt(id, 10), http.StatusSeeOther)
		return
	}

	h.renderEmployee(w, r, cred, &view.Notice{
		Message: updateMessage(res),
		Retry:   res.Retryable(),
		TaskID:  id,
		Status:  status,
	})
}

// GET /api/employee/tasks
func (h *EmployeeHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Tasks(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Warn("load employee tasks")
		response.Error(w, upstreamCode(err), err.Error())
		return
	}

	response.JSON(w, http.StatusOK, dto.TaskListResponse{
		Tasks:   dto.NewEmployeeTasks(snap.Tasks),
		Summary: snap.Summary,
	})
}

// PUT /api/employee/tasks/{id}
func (h *EmployeeHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, service.ErrInvalidID.Error())
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, service.ErrInvalidStatus.Error())
		return
	}

	res := h.service.SetStatus(r.Context(), auth.FromContext(r.Context()), id, domain.TaskStatus(req.Status))

	resp := dto.StatusResultResponse{
		TaskID:    res.TaskID,
		Status:    string(res.Status),
		Applied:   res.Applied,
		Retryable: res.Retryable(),
		Summary:   res.Snapshot.Summary,
	}
	if res.Snapshot.Tasks != nil {
		resp.Tasks = dto.NewEmployeeTasks(res.Snapshot.Tasks)
	}
	if !res.OK() {
		resp.Error = res.Err.Error()
	}

	response.JSON(w, resultCode(res), resp)
}

func (h *EmployeeHandler) renderEmployee(w http.ResponseWriter, r *http.Request, cred auth.Credential, notice *view.Notice) {
	page := view.NewEmployeePage(nil)
	if snap, ok := h.service.LastTasks(cred); ok {
		page = view.NewEmployeePage(snap.Tasks)
		page.Stale = true
	}
	page.Notice = notice
	h.render(w, r, page)
}

func (h *EmployeeHandler) render(w http.ResponseWriter, r *http.Request, page view.EmployeePage) {
	renderHTML(w, r, h.logger, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.Employee(buf, page)
	})
}

func resultCode(res service.Result) int {
	switch err := res.Err; {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInFlight), errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, workerpool.ErrPoolFull), errors.Is(err, workerpool.ErrPoolClosed):
		return http.StatusServiceUnavailable
	default:
		return upstreamCode(err)
	}
}

func upstreamCode(err error) int {
	switch {
	case errors.Is(err, taskclient.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func loadMessage(err error) string {
	if errors.Is(err, taskclient.ErrUnauthorized) {
		return "Your session is not authorized to view tasks."
	}
	return "Could not load tasks. Reload the page to try again."
}

func updateMessage(res service.Result) string {
	switch err := res.Err; {
	case errors.Is(err, service.ErrInvalidID):
		return "Unknown task."
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidTransition):
		return "That status change is not allowed."
	case errors.Is(err, service.ErrInFlight):
		return "An update for this task is already in progress."
	case errors.Is(err, workerpool.ErrPoolFull):
		return "Too many updates in progress. Try again shortly."
	case errors.Is(err, taskclient.ErrUnauthorized):
		return "Your session is not authorized to update tasks."
	case errors.Is(err, service.ErrRefreshFailed):
		return "Status updated, but the task list could not be refreshed. Reload the page."
	default:
		return "Could not update the task status."
	}
}
