package repository

import (
	"context"
	"errors"

	"komarabo/internal/domain"
)

var (
	// ErrNotFound is wrapped by repositories when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is wrapped when a unique key is already taken.
	ErrDuplicate = errors.New("already exists")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByHash(ctx context.Context, userHash string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	SetAdmin(ctx context.Context, userHash string, isAdmin bool) error
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
}
