package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"task-service/internal/mocks"
	"task-service/internal/models"
)

func setupActivityRouter(handler *ActivityHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 4)
		c.Set("role", models.RoleUser)
		c.Next()
	})
	r.GET("/activity/:task_id", handler.GetTaskActivity)
	return r
}

func TestGetTaskActivity(t *testing.T) {
	activityRepo := new(mocks.ActivityRepositoryMock)
	handler := NewActivityHandler(activityRepo)
	router := setupActivityRouter(handler)

	activityRepo.On("ListByTask", mock.Anything, 7).Return([]models.ActivityLog{
		{ID: 1, TaskID: 7, UserID: 4, Message: "Task created: deploy", Timestamp: time.Now().UTC()},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/activity/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Activity []models.ActivityLog `json:"activity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Activity, 1)
	require.Equal(t, "Task created: deploy", resp.Activity[0].Message)
}

func TestGetTaskActivityInvalidID(t *testing.T) {
	handler := NewActivityHandler(new(mocks.ActivityRepositoryMock))
	router := setupActivityRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/activity/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTaskActivityEmpty(t *testing.T) {
	activityRepo := new(mocks.ActivityRepositoryMock)
	handler := NewActivityHandler(activityRepo)
	router := setupActivityRouter(handler)

	activityRepo.On("ListByTask", mock.Anything, 7).Return(nil, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/activity/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"activity":[]`)
}
