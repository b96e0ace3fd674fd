package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"task-service/internal/models"
	"task-service/internal/repositories"
)

// ActivityHandler serves per-task activity history.
type ActivityHandler struct {
	activityRepo repositories.ActivityRepository
}

// NewActivityHandler constructs an ActivityHandler.
func NewActivityHandler(activityRepo repositories.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo}
}

// GetTaskActivity returns the activity log entries for a task in the
// order they were recorded.
func (h *ActivityHandler) GetTaskActivity(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("task_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	entries, err := h.activityRepo.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity"})
		return
	}
	if entries == nil {
		entries = []models.ActivityLog{}
	}
	c.JSON(http.StatusOK, gin.H{"activity": entries})
}
