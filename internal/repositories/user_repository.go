package repositories

import (
	"context"
	"errors"

	"task-service/internal/models"
	"task-service/internal/store"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserRepository abstracts user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, name, email, passwordHash, role string) (models.User, error)
	GetUser(ctx context.Context, userID int) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// UserRepo is a document-store implementation of UserRepository.
type UserRepo struct {
	store *store.Store
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(s *store.Store) *UserRepo {
	return &UserRepo{store: s}
}

// CreateUser registers a new user, rejecting duplicate emails.
func (r *UserRepo) CreateUser(ctx context.Context, name, email, passwordHash, role string) (models.User, error) {
	var user models.User
	err := r.store.Update(func(doc *store.Document) error {
		for _, u := range doc.Users {
			if u.Email == email {
				return ErrEmailTaken
			}
		}
		user = models.User{
			ID:       doc.NextUserID(),
			Name:     name,
			Email:    email,
			Password: passwordHash,
			Role:     role,
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	return user, err
}

// GetUser fetches a user by id.
func (r *UserRepo) GetUser(ctx context.Context, userID int) (models.User, error) {
	doc, err := r.store.Load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range doc.Users {
		if u.ID == userID {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// GetUserByEmail fetches a user by email.
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	doc, err := r.store.Load()
	if err != nil {
		return models.User{}, err
	}
	for _, u := range doc.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// ListUsers returns all users.
func (r *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}
