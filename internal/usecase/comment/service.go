package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/observability/logging"
	"newsnotes/internal/repository"
)

// DefaultBannedWordWarning is the form error shown for a banned word.
const DefaultBannedWordWarning = "Не ругайтесь!"

// CreateInput represents the input parameters for commenting a news item.
type CreateInput struct {
	NewsID int64
	Author *entity.User
	Text   string
}

// UpdateInput represents the input parameters for editing a comment.
type UpdateInput struct {
	ID     int64
	Author *entity.User
	Text   string
}

// Service provides comment management use cases.
type Service struct {
	News     repository.NewsRepository
	Comments repository.CommentRepository

	BannedWords       []string
	BannedWordWarning string

	// Now is used for CreatedAt; defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &entity.ValidationError{Field: "text", Message: "Обязательное поле."}
	}
	if entity.ContainsBannedWord(text, s.BannedWords) {
		msg := s.BannedWordWarning
		if msg == "" {
			msg = DefaultBannedWordWarning
		}
		return &entity.ValidationError{Field: "text", Message: msg}
	}
	return nil
}

// Create adds a comment to a news item.
// Returns a *entity.ValidationError for empty text or a banned word, in
// which case nothing is stored.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Comment, error) {
	const op = "comment.Create"

	if in.Author == nil || in.Author.ID <= 0 {
		return nil, ErrUnauthenticated
	}

	news, err := s.News.Get(ctx, in.NewsID)
	if err != nil {
		return nil, fmt.Errorf("get news: %w", err)
	}
	if news == nil {
		return nil, ErrNewsNotFound
	}

	if err := s.validateText(in.Text); err != nil {
		logging.FromContext(ctx).Warn("comment rejected",
			slog.String("op", op),
			slog.Int64("news_id", in.NewsID),
			slog.Int64("user_id", in.Author.ID),
			slog.String("reason", err.Error()))
		return nil, err
	}

	c := &entity.Comment{
		NewsID:     in.NewsID,
		AuthorID:   in.Author.ID,
		AuthorName: in.Author.Username,
		Text:       in.Text,
		CreatedAt:  s.now(),
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// Get returns a comment owned by author.
// A comment owned by somebody else is reported as ErrCommentNotFound.
func (s *Service) Get(ctx context.Context, id int64, author *entity.User) (*entity.Comment, error) {
	if id <= 0 {
		return nil, ErrInvalidCommentID
	}
	if author == nil {
		return nil, ErrUnauthenticated
	}

	c, err := s.Comments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if c == nil {
		return nil, ErrCommentNotFound
	}
	if !c.OwnedBy(author.ID) {
		logging.FromContext(ctx).Warn("foreign comment access",
			slog.String("op", "comment.Get"),
			slog.Int64("comment_id", id),
			slog.Int64("user_id", author.ID))
		return nil, ErrCommentNotFound
	}
	return c, nil
}

// Update replaces the text of a comment owned by in.Author.
// NewsID, AuthorID and CreatedAt are never changed.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Comment, error) {
	c, err := s.Get(ctx, in.ID, in.Author)
	if err != nil {
		return nil, err
	}

	if err := s.validateText(in.Text); err != nil {
		logging.FromContext(ctx).Warn("comment update rejected",
			slog.String("op", "comment.Update"),
			slog.Int64("comment_id", in.ID),
			slog.String("reason", err.Error()))
		return nil, err
	}

	c.Text = in.Text
	if err := s.Comments.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return c, nil
}

// Delete removes a comment owned by author and returns the news item it
// belonged to.
func (s *Service) Delete(ctx context.Context, id int64, author *entity.User) (newsID int64, err error) {
	c, err := s.Get(ctx, id, author)
	if err != nil {
		return 0, err
	}
	if err := s.Comments.Delete(ctx, c.ID); err != nil {
		return 0, fmt.Errorf("delete comment: %w", err)
	}
	return c.NewsID, nil
}
