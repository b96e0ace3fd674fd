package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"task-service/internal/models"
	"task-service/internal/repositories"
)

// NotificationHandler serves task alerts derived from the current task
// state plus the caller's stored notification inbox.
type NotificationHandler struct {
	taskRepo         repositories.TaskRepository
	notificationRepo repositories.NotificationRepository
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(taskRepo repositories.TaskRepository, notificationRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{taskRepo: taskRepo, notificationRepo: notificationRepo}
}

// ListAlerts recomputes alerts from the task list on every call. Users
// only see alerts for their own tasks.
func (h *NotificationHandler) ListAlerts(c *gin.Context) {
	tasks, err := h.taskRepo.ListTasks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	userID := c.GetInt("userID")
	role := c.GetString("role")

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	alerts := make([]models.TaskAlert, 0)
	for _, t := range tasks {
		if role != models.RoleAdmin && t.AssignedTo != userID {
			continue
		}

		if t.Priority == models.PriorityHigh && t.Status == models.StatusPending {
			alerts = append(alerts, models.TaskAlert{
				Type:     models.AlertHighPriority,
				Title:    t.Title,
				Priority: t.Priority,
				Status:   t.Status,
				DueDate:  t.DueDate,
			})
		}

		if t.DueDate == "" || t.Status == models.StatusCompleted {
			continue
		}
		due, err := time.Parse(dueDateLayout, t.DueDate)
		if err != nil {
			continue
		}

		switch {
		case due.Equal(tomorrow):
			alerts = append(alerts, models.TaskAlert{
				Type:     models.AlertDueTomorrow,
				Title:    t.Title,
				Priority: t.Priority,
				Status:   t.Status,
				DueDate:  t.DueDate,
			})
		case due.Before(today):
			alerts = append(alerts, models.TaskAlert{
				Type:     models.AlertOverdue,
				Title:    t.Title,
				Priority: t.Priority,
				Status:   t.Status,
				DueDate:  t.DueDate,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": alerts})
}

// Inbox returns the stored notifications addressed to the caller.
func (h *NotificationHandler) Inbox(c *gin.Context) {
	notes, err := h.notificationRepo.ListForUser(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}
	if notes == nil {
		notes = []models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notes})
}
