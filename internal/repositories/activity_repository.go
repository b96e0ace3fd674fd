package repositories

import (
	"context"
	"time"

	"task-service/internal/models"
	"task-service/internal/store"
)

// ActivityRepository records and reads per-task activity entries.
type ActivityRepository interface {
	LogActivity(ctx context.Context, taskID int, userID int, message string) (models.ActivityLog, error)
	ListByTask(ctx context.Context, taskID int) ([]models.ActivityLog, error)
}

// ActivityRepo is a document-store implementation of ActivityRepository.
type ActivityRepo struct {
	store *store.Store
}

// NewActivityRepo constructs an ActivityRepo.
func NewActivityRepo(s *store.Store) *ActivityRepo {
	return &ActivityRepo{store: s}
}

// LogActivity appends an activity entry for the task.
func (r *ActivityRepo) LogActivity(ctx context.Context, taskID int, userID int, message string) (models.ActivityLog, error) {
	var entry models.ActivityLog
	err := r.store.Update(func(doc *store.Document) error {
		entry = models.ActivityLog{
			ID:        doc.NextActivityID(),
			TaskID:    taskID,
			UserID:    userID,
			Message:   message,
			Timestamp: time.Now().UTC(),
		}
		doc.ActivityLogs = append(doc.ActivityLogs, entry)
		return nil
	})
	return entry, err
}

// ListByTask returns activity entries for the task in insertion order.
func (r *ActivityRepo) ListByTask(ctx context.Context, taskID int) ([]models.ActivityLog, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	var entries []models.ActivityLog
	for _, entry := range doc.ActivityLogs {
		if entry.TaskID == taskID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}
