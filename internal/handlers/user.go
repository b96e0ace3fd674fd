package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"task-service/internal/auth"
	"task-service/internal/models"
	"task-service/internal/repositories"
)

// AuthHandler manages signup, login and identity lookups.
type AuthHandler struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(userRepo repositories.UserRepository, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, tokens: tokens}
}

type userResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Signup registers a new user with a hashed password.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := strings.ToLower(req.Role)
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	if _, err := h.userRepo.CreateUser(c.Request.Context(), req.Name, req.Email, hash, role); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created", "role": role})
}

// Login verifies credentials and returns a signed access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password"})
		return
	}
	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := h.tokens.IssueToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "role": user.Role})
}

// Me echoes the authenticated identity back to the caller.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetInt("userID"),
		"role":    c.GetString("role"),
	})
}

// ListUsers returns every registered user without password hashes.
// Admin only.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	if c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admins only"})
		return
	}

	users, err := h.userRepo.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	}

	c.JSON(http.StatusOK, gin.H{"users": resp})
}
