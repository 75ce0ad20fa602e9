package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"task-dashboard/internal/auth"
	"task-dashboard/internal/http/handlers"
	"task-dashboard/internal/http/middleware"
	"task-dashboard/internal/http/response"
)

type Options struct {
	AllowedOrigins []string
}

func New(logger *logrus.Logger, admin *handlers.AdminHandler, employee *handlers.EmployeeHandler, opts Options) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logging(logger), auth.Middleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// pages
	r.HandleFunc("/", admin.Dashboard).Methods(http.MethodGet)
	r.HandleFunc("/assign", admin.Assign).Methods(http.MethodPost)
	r.HandleFunc("/edashboard", employee.Dashboard).Methods(http.MethodGet)
	r.HandleFunc("/edashboard/tasks/{id:[0-9]+}/status", employee.UpdateStatus).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/admin/tasks", admin.ListTasks).Methods(http.MethodGet)
	api.HandleFunc("/admin/tasks", admin.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/admin/employees", admin.ListEmployees).Methods(http.MethodGet)
	api.HandleFunc("/admin/summary", admin.Summary).Methods(http.MethodGet)
	api.HandleFunc("/admin/report", admin.Report).Methods(http.MethodGet)
	api.HandleFunc("/employee/tasks", employee.ListTasks).Methods(http.MethodGet)
	api.HandleFunc("/employee/tasks/{id:[0-9]+}", employee.SetStatus).Methods(http.MethodPut)

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	return middleware.Recovery(logger)(c.Handler(r))
}
