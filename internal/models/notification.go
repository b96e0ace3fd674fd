package models

import "time"

// Notification is a stored per-user notification created by task triggers.
type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	TaskID    int       `json:"task_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}

// Task alert types returned by the notifications listing.
const (
	AlertHighPriority = "high_priority"
	AlertDueTomorrow  = "due_tomorrow"
	AlertOverdue      = "overdue"
)

// TaskAlert is a notification derived on the fly from the caller's tasks.
type TaskAlert struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	DueDate  string `json:"due_date"`
}
