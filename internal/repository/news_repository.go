package repository

import (
	"context"

	"newsnotes/internal/domain/entity"
)

// NewsWithCommentCount pairs a news item with the number of its comments.
type NewsWithCommentCount struct {
	News         *entity.News
	CommentCount int64
}

type NewsRepository interface {
	// ListPage returns news ordered by date DESC, id DESC.
	ListPage(ctx context.Context, offset, limit int) ([]NewsWithCommentCount, error)
	Count(ctx context.Context) (int64, error)
	// Get returns (nil, nil) if the news item does not exist.
	Get(ctx context.Context, id int64) (*entity.News, error)
	Create(ctx context.Context, news *entity.News) error
}
