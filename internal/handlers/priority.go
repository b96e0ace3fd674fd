package handlers

import (
	"time"

	"task-service/internal/models"
)

const dueDateLayout = "2006-01-02"

// priorityFromDueDate derives a task priority from how close the due date
// is. Due today or overdue is high, within two days is medium, anything
// later is low. An absent or malformed date yields "" and leaves the
// caller-supplied priority in place.
func priorityFromDueDate(dueDate string) string {
	if dueDate == "" {
		return ""
	}
	due, err := time.Parse(dueDateLayout, dueDate)
	if err != nil {
		return ""
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(due.Sub(today).Hours() / 24)

	switch {
	case days <= 0:
		return models.PriorityHigh
	case days <= 2:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
