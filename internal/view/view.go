package view

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Admin(w io.Writer, page AdminPage) error {
	return r.tmpl.ExecuteTemplate(w, "admin.html", page)
}

func (r *Renderer) Employee(w io.Writer, page EmployeePage) error {
	return r.tmpl.ExecuteTemplate(w, "employee.html", page)
}
