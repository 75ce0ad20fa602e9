// Package taskservice is a development implementation of the external task
// service consumed by the employee dashboard.
package taskservice

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"task-dashboard/internal/domain"
	"task-dashboard/internal/http/response"
	"task-dashboard/internal/store"
)

type createTaskRequest struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	Deadline    domain.Date `json:"deadline"`
	AssignedTo  int64       `json:"assigned_to" validate:"gte=0"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}

type Handler struct {
	logger    *logrus.Logger
	validator *validator.Validate
	store     store.TaskStore
}

func NewRouter(logger *logrus.Logger, st store.TaskStore) http.Handler {
	h := &Handler{
		logger:    logger,
		validator: validator.New(),
		store:     st,
	}

	router := mux.NewRouter()
	router.Use(requireToken)
	router.HandleFunc("/tasks", h.List).Methods(http.MethodGet)
	router.HandleFunc("/tasks", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id:[0-9]+}", h.UpdateStatus).Methods(http.MethodPut)

	return router
}

// requireToken only checks presence; the value is never interpreted.
func requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(r.Header.Get("Authorization")) == "" {
			response.Error(w, http.StatusUnauthorized, "missing authorization")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GET /tasks
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.List(r.Context())
	if err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Error("list tasks")
		response.Error(w, http.StatusInternalServerError, "failed getting tasks")
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	response.JSON(w, http.StatusOK, tasks)
}

// POST /tasks
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := h.validator.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	task, err := h.store.Create(r.Context(), domain.Task{
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		Deadline:    req.Deadline,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, task)
}

// GET /tasks/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	task, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, task)
}

// PUT /tasks/{id}
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid status")
		return
	}

	task, err := h.store.UpdateStatus(r.Context(), id, domain.TaskStatus(req.Status))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, task)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Error(w, http.StatusNotFound, store.ErrNotFound.Error())
	case errors.Is(err, store.ErrConflict):
		response.Error(w, http.StatusConflict, store.ErrConflict.Error())
	default:
		h.logger.WithContext(r.Context()).WithError(err).Error("task store")
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, http.StatusBadRequest, "invalid task id")
		return 0, false
	}
	return id, true
}
