package domain

// Action is a status change an employee may request for a task.
type Action struct {
	Label  string
	Status TaskStatus
}

var (
	ActionStart    = Action{Label: "Start", Status: StatusInProgress}
	ActionComplete = Action{Label: "Complete", Status: StatusCompleted}
)

// Actions returns the legal next steps for a task in the given status.
// Status only moves forward: pending -> in-progress -> completed.
func Actions(s TaskStatus) []Action {
	switch s {
	case StatusCompleted:
		return nil
	case StatusInProgress:
		return []Action{ActionComplete}
	default:
		return []Action{ActionStart, ActionComplete}
	}
}

func CanTransition(from, to TaskStatus) bool {
	for _, a := range Actions(from) {
		if a.Status == to {
			return true
		}
	}
	return false
}

// IsTarget reports whether s can be requested as a new status.
func IsTarget(s TaskStatus) bool {
	return s == StatusInProgress || s == StatusCompleted
}
