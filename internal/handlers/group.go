package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"task-service/internal/models"
	"task-service/internal/repositories"
	"task-service/internal/telemetry"
)

// GroupHandler manages group endpoints. Group lifecycle is admin-only.
type GroupHandler struct {
	groupRepo repositories.GroupRepository
	audit     *telemetry.AuditEmitter
}

// NewGroupHandler constructs a GroupHandler.
func NewGroupHandler(groupRepo repositories.GroupRepository, audit *telemetry.AuditEmitter) *GroupHandler {
	return &GroupHandler{groupRepo: groupRepo, audit: audit}
}

// ListGroups returns all groups for admins, joined groups for users.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	userID := c.GetInt("userID")
	role := c.GetString("role")

	var (
		groups []models.Group
		err    error
	)
	if role == models.RoleAdmin {
		groups, err = h.groupRepo.ListGroups(c.Request.Context())
	} else {
		groups, err = h.groupRepo.ListGroupsForUser(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load groups"})
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// CreateGroup handles POST /groups. Admin only; the creator always becomes
// a member.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	if c.GetString("role") != models.RoleAdmin {
		h.emitAudit(c, "ERROR", "not allowed")
		c.JSON(http.StatusForbidden, gin.H{"error": "only admin can create groups"})
		return
	}

	var req struct {
		Name    string `json:"name" binding:"required"`
		Members []int  `json:"members"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.emitAudit(c, "ERROR", "invalid request payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.groupRepo.CreateGroup(c.Request.Context(), c.GetInt("userID"), req.Name, req.Members)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create group"})
		return
	}

	h.emitAudit(c, "INFO", "Group created")
	c.JSON(http.StatusCreated, group)
}

// DeleteGroup removes a group and cascades memberships and messages.
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	if c.GetString("role") != models.RoleAdmin {
		h.emitAudit(c, "ERROR", "not allowed")
		c.JSON(http.StatusForbidden, gin.H{"error": "admins only"})
		return
	}

	groupID, err := strconv.Atoi(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	if err := h.groupRepo.DeleteGroup(c.Request.Context(), groupID); err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
			return
		}
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete group"})
		return
	}

	h.emitAudit(c, "INFO", "Group deleted")
	c.JSON(http.StatusOK, gin.H{"message": "group deleted"})
}

func (h *GroupHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}
