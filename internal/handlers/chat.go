package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"task-service/internal/models"
	"task-service/internal/repositories"
	"task-service/internal/storage"
	"task-service/internal/telemetry"
)

// ChatHandler manages the request/response side of group chat.
type ChatHandler struct {
	groupRepo   repositories.GroupRepository
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	uploads     storage.UploadStorage
	audit       *telemetry.AuditEmitter
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(groupRepo repositories.GroupRepository, messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, uploads storage.UploadStorage, audit *telemetry.AuditEmitter) *ChatHandler {
	return &ChatHandler{
		groupRepo:   groupRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		uploads:     uploads,
		audit:       audit,
	}
}

// PostMessage persists a chat message for a group the caller belongs to and
// returns the stored record.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	userID := c.GetInt("userID")
	member, err := h.groupRepo.IsMember(c.Request.Context(), groupID, userID)
	if err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return
	}
	if !member {
		h.emitAudit(c, "ERROR", "not allowed")
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member"})
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messageRepo.Append(c.Request.Context(), groupID, userID, req.Message)
	if err != nil {
		if errors.Is(err, repositories.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is empty"})
			return
		}
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	h.emitAudit(c, "INFO", "Chat message sent")
	c.JSON(http.StatusCreated, msg)
}

// GetMessages returns the group's messages in insertion order with the
// sender display name resolved. Admins may read without membership.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("group_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	userID := c.GetInt("userID")
	role := c.GetString("role")

	member, err := h.groupRepo.IsMember(c.Request.Context(), groupID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return
	}
	if role != models.RoleAdmin && !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member"})
		return
	}

	msgs, err := h.messageRepo.ListByGroup(c.Request.Context(), groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	nameByID := map[int]string{}
	views := make([]models.ChatMessageView, 0, len(msgs))
	for _, m := range msgs {
		sender, ok := nameByID[m.SenderID]
		if !ok {
			sender = "Unknown"
			if user, err := h.userRepo.GetUser(c.Request.Context(), m.SenderID); err == nil {
				sender = user.DisplayName()
			}
			nameByID[m.SenderID] = sender
		}
		views = append(views, models.ChatMessageView{
			SenderID: m.SenderID,
			Sender:   sender,
			Message:  m.Message,
			Time:     m.Timestamp.UTC().Format(time.RFC3339Nano),
			Type:     "text",
		})
	}

	c.JSON(http.StatusOK, gin.H{"messages": views})
}

// Upload stores a file under a generated unique name and returns its URL.
// No auth is enforced here, matching the original surface.
func (h *ChatHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	url, err := h.uploads.Store(c.Request.Context(), header.Filename, file)
	if err != nil {
		h.emitAudit(c, "ERROR", "upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file_url":  url,
		"file_name": header.Filename,
		"file_type": header.Header.Get("Content-Type"),
	})
}

func (h *ChatHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}
