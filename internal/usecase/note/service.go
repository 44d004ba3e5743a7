package note

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/observability/logging"
	"newsnotes/internal/repository"
)

// DefaultSlugWarning is appended to a clashing slug in the form error.
const DefaultSlugWarning = " - такой slug уже существует, придумайте уникальное значение!"

const requiredMessage = "Обязательное поле."

// Input carries the form fields of a note.
// An empty Slug is derived from Title.
type Input struct {
	Title  string
	Text   string
	Slug   string
	Author *entity.User
}

// Service provides note management use cases. Every operation is scoped
// to the acting author.
type Service struct {
	Notes       repository.NoteRepository
	SlugWarning string

	// Now is used for CreatedAt; defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) slugTaken(slug string) error {
	warning := s.SlugWarning
	if warning == "" {
		warning = DefaultSlugWarning
	}
	return &entity.ValidationError{Field: "slug", Message: slug + warning}
}

// List returns the notes of author.
func (s *Service) List(ctx context.Context, author *entity.User) ([]*entity.Note, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	notes, err := s.Notes.ListByAuthor(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []*entity.Note{}
	}
	return notes, nil
}

// prepare validates in and returns the slug to store.
func (s *Service) prepare(ctx context.Context, in Input, excludeID int64) (string, error) {
	if strings.TrimSpace(in.Text) == "" {
		return "", &entity.ValidationError{Field: "text", Message: requiredMessage}
	}
	if err := entity.ValidateNoteTitle(in.Title); err != nil {
		return "", err
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = entity.Slugify(in.Title, entity.MaxSlugLength)
		if slug == "" {
			return "", &entity.ValidationError{Field: "slug", Message: requiredMessage}
		}
	} else if err := entity.ValidateSlug(slug); err != nil {
		return "", err
	}

	taken, err := s.Notes.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return "", s.slugTaken(slug)
	}
	return slug, nil
}

// Create stores a new note for in.Author.
// Validation failures are returned as *entity.ValidationError and nothing
// is stored.
func (s *Service) Create(ctx context.Context, in Input) (*entity.Note, error) {
	const op = "note.Create"

	if in.Author == nil || in.Author.ID <= 0 {
		return nil, ErrUnauthenticated
	}

	slug, err := s.prepare(ctx, in, 0)
	if err != nil {
		logging.FromContext(ctx).Warn("note rejected",
			slog.String("op", op),
			slog.Int64("user_id", in.Author.ID),
			slog.String("reason", err.Error()))
		return nil, err
	}

	n := &entity.Note{
		Title:     in.Title,
		Text:      in.Text,
		Slug:      slug,
		AuthorID:  in.Author.ID,
		CreatedAt: s.now(),
	}
	if err := s.Notes.Create(ctx, n); err != nil {
		// Lost a race with a concurrent insert of the same slug.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.slugTaken(slug)
		}
		return nil, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

// Get returns the note with slug if author owns it.
func (s *Service) Get(ctx context.Context, slug string, author *entity.User) (*entity.Note, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	n, err := s.Notes.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	if n == nil {
		return nil, ErrNoteNotFound
	}
	if !n.OwnedBy(author.ID) {
		logging.FromContext(ctx).Warn("foreign note access",
			slog.String("op", "note.Get"),
			slog.String("slug", slug),
			slog.Int64("user_id", author.ID))
		return nil, ErrNoteNotFound
	}
	return n, nil
}

// Update rewrites the note with slug. The new slug must not clash with any
// other note.
func (s *Service) Update(ctx context.Context, slug string, in Input) (*entity.Note, error) {
	n, err := s.Get(ctx, slug, in.Author)
	if err != nil {
		return nil, err
	}

	newSlug, err := s.prepare(ctx, in, n.ID)
	if err != nil {
		logging.FromContext(ctx).Warn("note update rejected",
			slog.String("op", "note.Update"),
			slog.String("slug", slug),
			slog.String("reason", err.Error()))
		return nil, err
	}

	n.Title = in.Title
	n.Text = in.Text
	n.Slug = newSlug
	if err := s.Notes.Update(ctx, n); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.slugTaken(newSlug)
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

// Delete removes the note with slug if author owns it.
func (s *Service) Delete(ctx context.Context, slug string, author *entity.User) error {
	n, err := s.Get(ctx, slug, author)
	if err != nil {
		return err
	}
	if err := s.Notes.Delete(ctx, n.ID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
