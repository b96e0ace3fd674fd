package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"task-service/internal/mocks"
	"task-service/internal/models"
	"task-service/internal/repositories"
)

func setupTaskRouter(handler *TaskHandler, userID int, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	})
	r.GET("/tasks", handler.ListTasks)
	r.POST("/tasks", handler.CreateTask)
	r.PUT("/tasks/:task_id", handler.UpdateTask)
	r.DELETE("/tasks/:task_id", handler.DeleteTask)
	return r
}

func TestCreateTaskUserAssignsSelf(t *testing.T) {
	taskRepo := new(mocks.TaskRepositoryMock)
	activityRepo := new(mocks.ActivityRepositoryMock)
	notificationRepo := new(mocks.NotificationRepositoryMock)
	handler := NewTaskHandler(taskRepo, activityRepo, notificationRepo, nil)
	router := setupTaskRouter(handler, 4, models.RoleUser)

	taskRepo.On("CreateTask", mock.Anything, mock.MatchedBy(func(task models.Task) bool {
		return task.AssignedTo == 4 && task.CreatedBy == 4 && task.Priority == models.PriorityLow
	})).Return(models.Task{ID: 1, Title: "write docs", Priority: models.PriorityLow, Status: models.StatusPending, AssignedTo: 4, CreatedBy: 4}, nil).Once()
	activityRepo.On("LogActivity", mock.Anything, 1, 4, "Task created: write docs").
		Return(models.ActivityLog{ID: 1}, nil).Once()

	body := bytes.NewBufferString(`{"title":"write docs","assigned_to":9}`)
	req := httptest.NewRequest(http.MethodPost, "/tasks", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	taskRepo.AssertExpectations(t)
	activityRepo.AssertExpectations(t)
	notificationRepo.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTaskDueTodayBecomesHighAndNotifies(t *testing.T) {
	taskRepo := new(mocks.TaskRepositoryMock)
	activityRepo := new(mocks.ActivityRepositoryMock)
	notificationRepo := new(mocks.NotificationRepositoryMock)
	handler := NewTaskHandler(taskRepo, activityRepo, notificationRepo, nil)
	router := setupTaskRouter(handler, 2, models.RoleAdmin)

	today := time.Now().Format(dueDateLayout)

	taskRepo.On("CreateTask", mock.Anything, mock.MatchedBy(func(task models.Task) bool {
		return task.Priority == models.PriorityHigh && task.AssignedTo == 7
	})).Return(models.Task{ID: 3, Title: "ship it", Priority: models.PriorityHigh, Status: models.StatusPending, DueDate: today, AssignedTo: 7, CreatedBy: 2}, nil).Once()
	activityRepo.On("LogActivity", mock.Anything, 3, 2, "Task created: ship it").
		Return(models.ActivityLog{ID: 1}, nil).Once()
	notificationRepo.On("CreateNotification", mock.Anything, 7, 3, "New task created: ship it").
		Return(models.Notification{ID: 1}, nil).Once()

	body := bytes.NewBufferString(fmt.Sprintf(`{"title":"ship it","priority":"low","due_date":"%s","assigned_to":7}`, today))
	req := httptest.NewRequest(http.MethodPost, "/tasks", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	taskRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestListTasksFiltersForUser(t *testing.T) {
	taskRepo := new(mocks.TaskRepositoryMock)
	handler := NewTaskHandler(taskRepo, new(mocks.ActivityRepositoryMock), new(mocks.NotificationRepositoryMock), nil)
	router := setupTaskRouter(handler, 4, models.RoleUser)

	taskRepo.On("ListTasks", mock.Anything).Return([]models.Task{
		{ID: 1, Title: "mine", AssignedTo: 4},
		{ID: 2, Title: "theirs", AssignedTo: 9},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tasks []models.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Tasks, 1)
	require.Equal(t, "mine", body.Tasks[0].Title)
}

func TestUpdateTaskForbiddenForOtherUser(t *testing.T) {
	taskRepo := new(mocks.TaskRepositoryMock)
	handler := NewTaskHandler(taskRepo, new(mocks.ActivityRepositoryMock), new(mocks.NotificationRepositoryMock), nil)
	router := setupTaskRouter(handler, 4, models.RoleUser)

	taskRepo.On("GetTask", mock.Anything, 7).Return(models.Task{ID: 7, AssignedTo: 9}, nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/tasks/7", bytes.NewBufferString(`{"status":"completed"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	taskRepo.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTaskStatusChangeLogsAndNotifies(t *testing.T) {
	taskRepo := new(mocks.TaskRepositoryMock)
	activityRepo := new(mocks.ActivityRepositoryMock)
	notificationRepo := new(mocks.NotificationRepositoryMock)
	handler := NewTaskHandler(taskRepo, activityRepo, notificationRepo, nil)
	router := setupTaskRouter(handler, 4, models.RoleUser)

	taskRepo.On("GetTask", mock.Anything, 7).
		Return(models.Task{ID: 7, Title: "deploy", Status: models.StatusPending, AssignedTo: 4}, nil).Once()
	taskRepo.On("UpdateTask", mock.Anything, 7, mock.Anything).
		Return(models.Task{ID: 7, Title: "deploy", Status: models.StatusCompleted, AssignedTo: 4}, nil).Once()
	activityRepo.On("LogActivity", mock.Anything, 7, 4, "Status changed from pending to completed").
		Return(models.ActivityLog{ID: 2}, nil).Once()
	notificationRepo.On("CreateNotification", mock.Anything, 4, 7, "Task 'deploy' status changed to completed").
		Return(models.Notification{ID: 2}, nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/tasks/7", bytes.NewBufferString(`{"status":"completed"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	taskRepo.AssertExpectations(t)
	activityRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestUpdateTaskNotFound(t *testing.T) {
	taskRepo := new(mocks.TaskRepositoryMock)
	handler := NewTaskHandler(taskRepo, new(mocks.ActivityRepositoryMock), new(mocks.NotificationRepositoryMock), nil)
	router := setupTaskRouter(handler, 4, models.RoleUser)

	taskRepo.On("GetTask", mock.Anything, 7).Return(models.Task{}, repositories.ErrTaskNotFound).Once()

	req := httptest.NewRequest(http.MethodPut, "/tasks/7", bytes.NewBufferString(`{"status":"completed"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTaskSuccess(t *testing.T) {
	taskRepo := new(mocks.TaskRepositoryMock)
	activityRepo := new(mocks.ActivityRepositoryMock)
	handler := NewTaskHandler(taskRepo, activityRepo, new(mocks.NotificationRepositoryMock), nil)
	router := setupTaskRouter(handler, 4, models.RoleUser)

	taskRepo.On("GetTask", mock.Anything, 7).
		Return(models.Task{ID: 7, Title: "deploy", AssignedTo: 4}, nil).Once()
	activityRepo.On("LogActivity", mock.Anything, 7, 4, "Task deleted: deploy").
		Return(models.ActivityLog{ID: 3}, nil).Once()
	taskRepo.On("DeleteTask", mock.Anything, 7).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/tasks/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	taskRepo.AssertExpectations(t)
	activityRepo.AssertExpectations(t)
}
