package repositories

import (
	"context"
	"errors"

	"task-service/internal/models"
	"task-service/internal/store"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository abstracts task persistence.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	GetTask(ctx context.Context, taskID int) (models.Task, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	UpdateTask(ctx context.Context, taskID int, upd models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, taskID int) error
}

// TaskRepo is a document-store implementation of TaskRepository.
type TaskRepo struct {
	store *store.Store
}

// NewTaskRepo constructs a TaskRepo.
func NewTaskRepo(s *store.Store) *TaskRepo {
	return &TaskRepo{store: s}
}

// CreateTask assigns the next id and persists the task.
func (r *TaskRepo) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	err := r.store.Update(func(doc *store.Document) error {
		task.ID = doc.NextTaskID()
		doc.Tasks = append(doc.Tasks, task)
		return nil
	})
	return task, err
}

// GetTask fetches a task by id.
func (r *TaskRepo) GetTask(ctx context.Context, taskID int) (models.Task, error) {
	doc, err := r.store.Load()
	if err != nil {
		return models.Task{}, err
	}
	for _, t := range doc.Tasks {
		if t.ID == taskID {
			return t, nil
		}
	}
	return models.Task{}, ErrTaskNotFound
}

// ListTasks returns all tasks.
func (r *TaskRepo) ListTasks(ctx context.Context) ([]models.Task, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

// UpdateTask applies the non-nil fields of upd and returns the updated task.
func (r *TaskRepo) UpdateTask(ctx context.Context, taskID int, upd models.TaskUpdate) (models.Task, error) {
	var updated models.Task
	err := r.store.Update(func(doc *store.Document) error {
		for i := range doc.Tasks {
			if doc.Tasks[i].ID != taskID {
				continue
			}
			t := &doc.Tasks[i]
			if upd.Title != nil {
				t.Title = *upd.Title
			}
			if upd.Description != nil {
				t.Description = *upd.Description
			}
			if upd.Priority != nil {
				t.Priority = *upd.Priority
			}
			if upd.Category != nil {
				t.Category = *upd.Category
			}
			if upd.DueDate != nil {
				t.DueDate = *upd.DueDate
			}
			if upd.Status != nil {
				t.Status = *upd.Status
			}
			if upd.AssignedTo != nil {
				t.AssignedTo = *upd.AssignedTo
			}
			updated = *t
			return nil
		}
		return ErrTaskNotFound
	})
	return updated, err
}

// DeleteTask removes the task.
func (r *TaskRepo) DeleteTask(ctx context.Context, taskID int) error {
	return r.store.Update(func(doc *store.Document) error {
		tasks := doc.Tasks[:0]
		found := false
		for _, t := range doc.Tasks {
			if t.ID == taskID {
				found = true
				continue
			}
			tasks = append(tasks, t)
		}
		if !found {
			return ErrTaskNotFound
		}
		doc.Tasks = tasks
		return nil
	})
}
