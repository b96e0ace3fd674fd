package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"task-service/internal/models"
	"task-service/internal/repositories"
	"task-service/internal/telemetry"
)

// TaskHandler manages task CRUD plus the activity and notification side
// effects that hang off task changes.
type TaskHandler struct {
	taskRepo         repositories.TaskRepository
	activityRepo     repositories.ActivityRepository
	notificationRepo repositories.NotificationRepository
	audit            *telemetry.AuditEmitter
}

// NewTaskHandler constructs a TaskHandler.
func NewTaskHandler(taskRepo repositories.TaskRepository, activityRepo repositories.ActivityRepository, notificationRepo repositories.NotificationRepository, audit *telemetry.AuditEmitter) *TaskHandler {
	return &TaskHandler{
		taskRepo:         taskRepo,
		activityRepo:     activityRepo,
		notificationRepo: notificationRepo,
		audit:            audit,
	}
}

type taskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
	AssignedTo  *int   `json:"assigned_to"`
}

// CreateTask handles POST /tasks. Regular users can only assign tasks to
// themselves; admins may assign to anyone. A near or past due date
// overrides the requested priority.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetInt("userID")
	role := c.GetString("role")

	assignedTo := userID
	if role == models.RoleAdmin && req.AssignedTo != nil {
		assignedTo = *req.AssignedTo
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityLow
	}
	if auto := priorityFromDueDate(req.DueDate); auto != "" {
		priority = auto
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	category := req.Category
	if category == "" {
		category = "general"
	}

	task, err := h.taskRepo.CreateTask(c.Request.Context(), models.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Category:    category,
		DueDate:     req.DueDate,
		Status:      status,
		AssignedTo:  assignedTo,
		CreatedBy:   userID,
	})
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create task"})
		return
	}

	if _, err := h.activityRepo.LogActivity(c.Request.Context(), task.ID, userID, "Task created: "+task.Title); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record activity"})
		return
	}
	if task.Priority == models.PriorityHigh && task.Status == models.StatusPending {
		if _, err := h.notificationRepo.CreateNotification(c.Request.Context(), task.AssignedTo, task.ID, "New task created: "+task.Title); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record notification"})
			return
		}
	}

	h.emitAudit(c, "INFO", "Task created")
	c.JSON(http.StatusCreated, task)
}

// ListTasks returns all tasks for admins, assigned tasks for users.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskRepo.ListTasks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tasks"})
		return
	}

	if c.GetString("role") != models.RoleAdmin {
		userID := c.GetInt("userID")
		mine := make([]models.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.AssignedTo == userID {
				mine = append(mine, t)
			}
		}
		tasks = mine
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// UpdateTask applies a partial update. Users may only touch their own
// tasks; a due date change recomputes the priority, and a status change
// is logged and notified.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	task, err := h.taskRepo.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load task"})
		return
	}

	userID := c.GetInt("userID")
	if c.GetString("role") != models.RoleAdmin && task.AssignedTo != userID {
		h.emitAudit(c, "ERROR", "not allowed")
		c.JSON(http.StatusForbidden, gin.H{"error": "not your task"})
		return
	}

	var upd models.TaskUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if upd.DueDate != nil {
		if auto := priorityFromDueDate(*upd.DueDate); auto != "" {
			upd.Priority = &auto
		}
	}

	updated, err := h.taskRepo.UpdateTask(c.Request.Context(), taskID, upd)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update task"})
		return
	}

	if upd.Status != nil && *upd.Status != task.Status {
		text := fmt.Sprintf("Status changed from %s to %s", task.Status, *upd.Status)
		if _, err := h.activityRepo.LogActivity(c.Request.Context(), taskID, userID, text); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record activity"})
			return
		}
		note := fmt.Sprintf("Task '%s' status changed to %s", updated.Title, *upd.Status)
		if _, err := h.notificationRepo.CreateNotification(c.Request.Context(), updated.AssignedTo, taskID, note); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record notification"})
			return
		}
	}

	h.emitAudit(c, "INFO", "Task updated")
	c.JSON(http.StatusOK, updated)
}

// DeleteTask removes a task the caller is allowed to manage.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	task, err := h.taskRepo.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load task"})
		return
	}

	userID := c.GetInt("userID")
	if c.GetString("role") != models.RoleAdmin && task.AssignedTo != userID {
		h.emitAudit(c, "ERROR", "not allowed")
		c.JSON(http.StatusForbidden, gin.H{"error": "not your task"})
		return
	}

	if _, err := h.activityRepo.LogActivity(c.Request.Context(), taskID, userID, "Task deleted: "+task.Title); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record activity"})
		return
	}
	if err := h.taskRepo.DeleteTask(c.Request.Context(), taskID); err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete task"})
		return
	}

	h.emitAudit(c, "INFO", "Task deleted")
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

func (h *TaskHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}
