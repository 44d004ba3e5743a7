package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/repository"
)

// CommentRepo stores comments in PostgreSQL.
type CommentRepo struct{ db Querier }

// NewCommentRepo returns a repository.CommentRepository backed by db.
func NewCommentRepo(db Querier) repository.CommentRepository {
	return &CommentRepo{db: db}
}

func (repo *CommentRepo) ListByNews(ctx context.Context, newsID int64) ([]*entity.Comment, error) {
	const query = `
SELECT c.id, c.news_id, c.author_id, u.username, c.text, c.created_at
FROM comments c
INNER JOIN users u ON u.id = c.author_id
WHERE c.news_id = $1
ORDER BY c.created_at ASC, c.id ASC`

	rows, err := repo.db.QueryContext(ctx, query, newsID)
	if err != nil {
		return nil, fmt.Errorf("ListByNews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	comments := make([]*entity.Comment, 0, 16)
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.NewsID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListByNews: Scan: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByNews: rows.Err: %w", err)
	}
	return comments, nil
}

func (repo *CommentRepo) Get(ctx context.Context, id int64) (*entity.Comment, error) {
	const query = `
SELECT c.id, c.news_id, c.author_id, u.username, c.text, c.created_at
FROM comments c
INNER JOIN users u ON u.id = c.author_id
WHERE c.id = $1
LIMIT 1`
	var c entity.Comment
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.NewsID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &c, nil
}

func (repo *CommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	const query = `
INSERT INTO comments (news_id, author_id, text, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, c.NewsID, c.AuthorID, c.Text, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *CommentRepo) Update(ctx context.Context, c *entity.Comment) error {
	const query = `UPDATE comments SET text = $1 WHERE id = $2`
	if _, err := repo.db.ExecContext(ctx, query, c.Text, c.ID); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (repo *CommentRepo) Delete(ctx context.Context, id int64) error {
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func (repo *CommentRepo) Count(ctx context.Context) (int64, error) {
	n, err := count(ctx, repo.db, `SELECT COUNT(*) FROM comments`)
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}
