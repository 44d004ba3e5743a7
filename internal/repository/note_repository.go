package repository

import (
	"context"

	"newsnotes/internal/domain/entity"
)

type NoteRepository interface {
	ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Note, error)
	// GetBySlug returns (nil, nil) if no note has that slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Note, error)
	// ExistsBySlug reports whether a note other than excludeID uses slug.
	// Pass excludeID 0 to check against every note.
	ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error)
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
