package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"task-service/internal/models"
	"task-service/internal/store"
)

var ErrEmptyMessage = errors.New("message body is empty")

// MessageRepository defines the append-only group chat message store.
type MessageRepository interface {
	Append(ctx context.Context, groupID int, senderID int, body string) (models.ChatMessage, error)
	ListByGroup(ctx context.Context, groupID int) ([]models.ChatMessage, error)
}

// MessageRepo is a document-store implementation of MessageRepository.
type MessageRepo struct {
	store *store.Store
}

// NewMessageRepo constructs a MessageRepo.
func NewMessageRepo(s *store.Store) *MessageRepo {
	return &MessageRepo{store: s}
}

// Append assigns the next sequential id, stamps current UTC time and
// persists the record. Bodies that are empty after trimming are rejected.
func (r *MessageRepo) Append(ctx context.Context, groupID int, senderID int, body string) (models.ChatMessage, error) {
	if strings.TrimSpace(body) == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	var msg models.ChatMessage
	err := r.store.Update(func(doc *store.Document) error {
		msg = models.ChatMessage{
			ID:        doc.NextMessageID(),
			GroupID:   groupID,
			SenderID:  senderID,
			Message:   body,
			Timestamp: time.Now().UTC(),
		}
		doc.Messages = append(doc.Messages, msg)
		return nil
	})
	return msg, err
}

// ListByGroup returns the group's messages in insertion order.
func (r *MessageRepo) ListByGroup(ctx context.Context, groupID int) ([]models.ChatMessage, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	var msgs []models.ChatMessage
	for _, m := range doc.Messages {
		if m.GroupID == groupID {
			msgs = append(msgs, m)
		}
	}
	return msgs, nil
}
