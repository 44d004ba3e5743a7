package repository

import (
	"context"

	"newsnotes/internal/domain/entity"
)

type CommentRepository interface {
	// ListByNews returns the comments of a news item ordered by created_at ASC, id ASC.
	ListByNews(ctx context.Context, newsID int64) ([]*entity.Comment, error)
	// Get returns (nil, nil) if the comment does not exist.
	Get(ctx context.Context, id int64) (*entity.Comment, error)
	Create(ctx context.Context, comment *entity.Comment) error
	// Update only rewrites the text.
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
