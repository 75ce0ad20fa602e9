package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"task-dashboard/internal/domain"
)

var ErrUnknownFormat = errors.New("unknown report format")

type Source interface {
	Tasks() []domain.Task
	Employees() []domain.Employee
}

type Row struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Deadline    domain.Date       `json:"deadline"`
	Assignee    string            `json:"assignee"`
	Status      domain.TaskStatus `json:"status"`
}

type Report struct {
	Summary domain.Summary `json:"summary"`
	Tasks   []Row          `json:"tasks"`
}

type Exporter struct{ src Source }

func NewExporter(src Source) *Exporter { return &Exporter{src: src} }

// ContentType returns the MIME type for a supported format.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "csv":
		return "text/csv"
	case "pdf":
		return "application/pdf"
	default:
		return "application/json"
	}
}

func (e *Exporter) Build() Report {
	tasks := e.src.Tasks()

	names := make(map[int64]string)
	for _, emp := range e.src.Employees() {
		names[emp.ID] = emp.Name
	}

	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		assignee, ok := names[t.AssignedTo]
		if !ok {
			assignee = "N/A"
		}
		rows = append(rows, Row{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Deadline:    t.Deadline,
			Assignee:    assignee,
			Status:      t.Status,
		})
	}

	return Report{Summary: domain.Summarize(tasks), Tasks: rows}
}

func (e *Exporter) Export(format string) ([]byte, error) {
	r := e.Build()

	switch strings.ToLower(format) {
	case "", "json":
		return json.MarshalIndent(r, "", "  ")
	case "csv":
		return exportCSV(r)
	case "pdf":
		return exportPDF(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func exportCSV(r Report) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)

	_ = w.Write([]string{"id", "title", "description", "deadline", "assignee", "status"})
	for _, row := range r.Tasks {
		_ = w.Write([]string{
			strconv.FormatInt(row.ID, 10),
			row.Title,
			row.Description,
			row.Deadline.String(),
			row.Assignee,
			string(row.Status),
		})
	}
	w.Flush()

	return b.Bytes(), w.Error()
}

func exportPDF(r Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Pending: %d  In Progress: %d  Completed: %d  Total: %d",
		r.Summary.Pending, r.Summary.InProgress, r.Summary.Completed, r.Summary.Total()), "0", "L", false)
	pdf.Ln(4)

	for _, row := range r.Tasks {
		deadline := row.Deadline.String()
		if deadline == "" {
			deadline = "N/A"
		}
		line := fmt.Sprintf("#%d %s [%s] due %s, assigned to %s", row.ID, row.Title, row.Status, deadline, row.Assignee)
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
