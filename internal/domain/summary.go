package domain

// Summary counts tasks per status. Other holds tasks with an unknown status
// so that Total always equals the number of summarized tasks.
type Summary struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in-progress"`
	Completed  int `json:"completed"`
	Other      int `json:"other,omitempty"`
}

type Slice struct {
	Name  string
	Value int
}

func Summarize(tasks []Task) Summary {
	var s Summary
	for _, t := range tasks {
		switch t.Status {
		case StatusPending:
			s.Pending++
		case StatusInProgress:
			s.InProgress++
		case StatusCompleted:
			s.Completed++
		default:
			s.Other++
		}
	}
	return s
}

func (s Summary) Total() int {
	return s.Pending + s.InProgress + s.Completed + s.Other
}

// Slices returns the chart series in display order.
func (s Summary) Slices() []Slice {
	return []Slice{
		{Name: "Pending", Value: s.Pending},
		{Name: "In Progress", Value: s.InProgress},
		{Name: "Completed", Value: s.Completed},
	}
}
