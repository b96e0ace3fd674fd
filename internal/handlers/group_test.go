package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"task-service/internal/mocks"
	"task-service/internal/models"
	"task-service/internal/repositories"
)

func setupGroupRouter(handler *GroupHandler, userID int, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	})
	r.GET("/groups", handler.ListGroups)
	r.POST("/groups", handler.CreateGroup)
	r.DELETE("/groups/:group_id", handler.DeleteGroup)
	return r
}

func TestListGroupsAdminSeesAll(t *testing.T) {
	groupRepo := new(mocks.GroupRepositoryMock)
	handler := NewGroupHandler(groupRepo, nil)
	router := setupGroupRouter(handler, 1, models.RoleAdmin)

	groupRepo.On("ListGroups", mock.Anything).Return([]models.Group{{ID: 1, Name: "ops"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	groupRepo.AssertExpectations(t)
	groupRepo.AssertNotCalled(t, "ListGroupsForUser", mock.Anything, mock.Anything)
}

func TestListGroupsUserSeesJoined(t *testing.T) {
	groupRepo := new(mocks.GroupRepositoryMock)
	handler := NewGroupHandler(groupRepo, nil)
	router := setupGroupRouter(handler, 4, models.RoleUser)

	groupRepo.On("ListGroupsForUser", mock.Anything, 4).Return([]models.Group{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	groupRepo.AssertExpectations(t)
}

func TestCreateGroupForbiddenForUser(t *testing.T) {
	groupRepo := new(mocks.GroupRepositoryMock)
	handler := NewGroupHandler(groupRepo, nil)
	router := setupGroupRouter(handler, 4, models.RoleUser)

	req := httptest.NewRequest(http.MethodPost, "/groups", bytes.NewBufferString(`{"name":"ops"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	groupRepo.AssertNotCalled(t, "CreateGroup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateGroupSuccess(t *testing.T) {
	groupRepo := new(mocks.GroupRepositoryMock)
	handler := NewGroupHandler(groupRepo, nil)
	router := setupGroupRouter(handler, 1, models.RoleAdmin)

	groupRepo.On("CreateGroup", mock.Anything, 1, "ops", []int{2, 3}).
		Return(models.Group{ID: 5, Name: "ops", CreatedBy: 1}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/groups", bytes.NewBufferString(`{"name":"ops","members":[2,3]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	groupRepo.AssertExpectations(t)
}

func TestCreateGroupInvalidBody(t *testing.T) {
	handler := NewGroupHandler(new(mocks.GroupRepositoryMock), nil)
	router := setupGroupRouter(handler, 1, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodPost, "/groups", bytes.NewBufferString(`{"name":5}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteGroupNotFound(t *testing.T) {
	groupRepo := new(mocks.GroupRepositoryMock)
	handler := NewGroupHandler(groupRepo, nil)
	router := setupGroupRouter(handler, 1, models.RoleAdmin)

	groupRepo.On("DeleteGroup", mock.Anything, 9).Return(repositories.ErrGroupNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/groups/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteGroupSuccess(t *testing.T) {
	groupRepo := new(mocks.GroupRepositoryMock)
	handler := NewGroupHandler(groupRepo, nil)
	router := setupGroupRouter(handler, 1, models.RoleAdmin)

	groupRepo.On("DeleteGroup", mock.Anything, 9).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/groups/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	groupRepo.AssertExpectations(t)
}
