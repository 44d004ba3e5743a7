package repository

import (
	"context"

	"newsnotes/internal/domain/entity"
)

type UserRepository interface {
	// GetByID returns (nil, nil) if the user does not exist.
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByUsername returns (nil, nil) if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Create returns ErrDuplicate if the username is taken.
	Create(ctx context.Context, user *entity.User) error
	Count(ctx context.Context) (int64, error)
}
