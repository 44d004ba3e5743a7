package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/repository"
)

// NoteRepo stores notes in PostgreSQL.
type NoteRepo struct{ db Querier }

// NewNoteRepo returns a repository.NoteRepository backed by db.
func NewNoteRepo(db Querier) repository.NoteRepository {
	return &NoteRepo{db: db}
}

func (repo *NoteRepo) ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Note, error) {
	const query = `
SELECT id, title, text, slug, author_id, created_at
FROM notes
WHERE author_id = $1
ORDER BY id ASC`

	rows, err := repo.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ListByAuthor: %w", err)
	}
	defer func() { _ = rows.Close() }()

	notes := make([]*entity.Note, 0, 16)
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Text, &n.Slug, &n.AuthorID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListByAuthor: Scan: %w", err)
		}
		notes = append(notes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByAuthor: rows.Err: %w", err)
	}
	return notes, nil
}

func (repo *NoteRepo) GetBySlug(ctx context.Context, slug string) (*entity.Note, error) {
	const query = `
SELECT id, title, text, slug, author_id, created_at
FROM notes
WHERE slug = $1
LIMIT 1`
	var n entity.Note
	err := repo.db.QueryRowContext(ctx, query, slug).
		Scan(&n.ID, &n.Title, &n.Text, &n.Slug, &n.AuthorID, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return &n, nil
}

func (repo *NoteRepo) ExistsBySlug(ctx context.Context, slug string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM notes WHERE slug = $1 AND id <> $2)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsBySlug: %w", err)
	}
	return exists, nil
}

func (repo *NoteRepo) Create(ctx context.Context, n *entity.Note) error {
	const query = `
INSERT INTO notes (title, text, slug, author_id, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, n.Title, n.Text, n.Slug, n.AuthorID, n.CreatedAt).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", mapUniqueViolation(err))
	}
	return nil
}

func (repo *NoteRepo) Update(ctx context.Context, n *entity.Note) error {
	const query = `
UPDATE notes
SET title = $1, text = $2, slug = $3
WHERE id = $4`
	if _, err := repo.db.ExecContext(ctx, query, n.Title, n.Text, n.Slug, n.ID); err != nil {
		return fmt.Errorf("Update: %w", mapUniqueViolation(err))
	}
	return nil
}

func (repo *NoteRepo) Delete(ctx context.Context, id int64) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func (repo *NoteRepo) Count(ctx context.Context) (int64, error) {
	n, err := count(ctx, repo.db, `SELECT COUNT(*) FROM notes`)
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}
