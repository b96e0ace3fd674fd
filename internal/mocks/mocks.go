package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"task-service/internal/models"
	"task-service/internal/repositories"
	"task-service/internal/storage"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, name, email, passwordHash, role string) (models.User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

type GroupRepositoryMock struct {
	mock.Mock
}

func (m *GroupRepositoryMock) CreateGroup(ctx context.Context, creatorID int, name string, memberIDs []int) (models.Group, error) {
	args := m.Called(ctx, creatorID, name, memberIDs)
	var group models.Group
	if val := args.Get(0); val != nil {
		group = val.(models.Group)
	}
	return group, args.Error(1)
}

func (m *GroupRepositoryMock) ListGroups(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	var groups []models.Group
	if val := args.Get(0); val != nil {
		groups = val.([]models.Group)
	}
	return groups, args.Error(1)
}

func (m *GroupRepositoryMock) ListGroupsForUser(ctx context.Context, userID int) ([]models.Group, error) {
	args := m.Called(ctx, userID)
	var groups []models.Group
	if val := args.Get(0); val != nil {
		groups = val.([]models.Group)
	}
	return groups, args.Error(1)
}

func (m *GroupRepositoryMock) IsMember(ctx context.Context, groupID int, userID int) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *GroupRepositoryMock) DeleteGroup(ctx context.Context, groupID int) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Append(ctx context.Context, groupID int, senderID int, body string) (models.ChatMessage, error) {
	args := m.Called(ctx, groupID, senderID, body)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListByGroup(ctx context.Context, groupID int) ([]models.ChatMessage, error) {
	args := m.Called(ctx, groupID)
	var msgs []models.ChatMessage
	if val := args.Get(0); val != nil {
		msgs = val.([]models.ChatMessage)
	}
	return msgs, args.Error(1)
}

type TaskRepositoryMock struct {
	mock.Mock
}

func (m *TaskRepositoryMock) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	args := m.Called(ctx, task)
	var created models.Task
	if val := args.Get(0); val != nil {
		created = val.(models.Task)
	}
	return created, args.Error(1)
}

func (m *TaskRepositoryMock) GetTask(ctx context.Context, taskID int) (models.Task, error) {
	args := m.Called(ctx, taskID)
	var task models.Task
	if val := args.Get(0); val != nil {
		task = val.(models.Task)
	}
	return task, args.Error(1)
}

func (m *TaskRepositoryMock) ListTasks(ctx context.Context) ([]models.Task, error) {
	args := m.Called(ctx)
	var tasks []models.Task
	if val := args.Get(0); val != nil {
		tasks = val.([]models.Task)
	}
	return tasks, args.Error(1)
}

func (m *TaskRepositoryMock) UpdateTask(ctx context.Context, taskID int, upd models.TaskUpdate) (models.Task, error) {
	args := m.Called(ctx, taskID, upd)
	var task models.Task
	if val := args.Get(0); val != nil {
		task = val.(models.Task)
	}
	return task, args.Error(1)
}

func (m *TaskRepositoryMock) DeleteTask(ctx context.Context, taskID int) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

type ActivityRepositoryMock struct {
	mock.Mock
}

func (m *ActivityRepositoryMock) LogActivity(ctx context.Context, taskID int, userID int, message string) (models.ActivityLog, error) {
	args := m.Called(ctx, taskID, userID, message)
	var entry models.ActivityLog
	if val := args.Get(0); val != nil {
		entry = val.(models.ActivityLog)
	}
	return entry, args.Error(1)
}

func (m *ActivityRepositoryMock) ListByTask(ctx context.Context, taskID int) ([]models.ActivityLog, error) {
	args := m.Called(ctx, taskID)
	var entries []models.ActivityLog
	if val := args.Get(0); val != nil {
		entries = val.([]models.ActivityLog)
	}
	return entries, args.Error(1)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

func (m *NotificationRepositoryMock) CreateNotification(ctx context.Context, userID int, taskID int, message string) (models.Notification, error) {
	args := m.Called(ctx, userID, taskID, message)
	var note models.Notification
	if val := args.Get(0); val != nil {
		note = val.(models.Notification)
	}
	return note, args.Error(1)
}

func (m *NotificationRepositoryMock) ListForUser(ctx context.Context, userID int) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	var notes []models.Notification
	if val := args.Get(0); val != nil {
		notes = val.([]models.Notification)
	}
	return notes, args.Error(1)
}

type UploadStorageMock struct {
	mock.Mock
}

func (m *UploadStorageMock) Store(ctx context.Context, filename string, body io.Reader) (string, error) {
	args := m.Called(ctx, filename, body)
	return args.String(0), args.Error(1)
}

var (
	_ repositories.UserRepository         = (*UserRepositoryMock)(nil)
	_ repositories.GroupRepository        = (*GroupRepositoryMock)(nil)
	_ repositories.MessageRepository      = (*MessageRepositoryMock)(nil)
	_ repositories.TaskRepository         = (*TaskRepositoryMock)(nil)
	_ repositories.ActivityRepository     = (*ActivityRepositoryMock)(nil)
	_ repositories.NotificationRepository = (*NotificationRepositoryMock)(nil)
	_ storage.UploadStorage               = (*UploadStorageMock)(nil)
)
