package models

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Task is a unit of work assigned to a user. DueDate uses the date-only
// form 2006-01-02 and may be empty.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
	AssignedTo  int    `json:"assigned_to"`
	CreatedBy   int    `json:"created_by"`
}

// TaskUpdate carries a partial task update. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Category    *string `json:"category"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
	AssignedTo  *int    `json:"assigned_to"`
}
