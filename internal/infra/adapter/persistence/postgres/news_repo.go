package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/repository"
)

// NewsRepo stores news items in PostgreSQL.
type NewsRepo struct{ db Querier }

// NewNewsRepo returns a repository.NewsRepository backed by db.
func NewNewsRepo(db Querier) repository.NewsRepository {
	return &NewsRepo{db: db}
}

// ListPage orders by date, newest first, with id as the tie breaker.
func (repo *NewsRepo) ListPage(ctx context.Context, offset, limit int) ([]repository.NewsWithCommentCount, error) {
	const query = `
SELECT n.id, n.title, n.text, n.date, n.created_at,
       (SELECT COUNT(*) FROM comments c WHERE c.news_id = n.id) AS comment_count
FROM news n
ORDER BY n.date DESC, n.id DESC
LIMIT $1 OFFSET $2`

	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListPage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]repository.NewsWithCommentCount, 0, limit)
	for rows.Next() {
		var n entity.News
		var cnt int64
		if err := rows.Scan(&n.ID, &n.Title, &n.Text, &n.Date, &n.CreatedAt, &cnt); err != nil {
			return nil, fmt.Errorf("ListPage: Scan: %w", err)
		}
		result = append(result, repository.NewsWithCommentCount{News: &n, CommentCount: cnt})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPage: rows.Err: %w", err)
	}
	return result, nil
}

func (repo *NewsRepo) Count(ctx context.Context) (int64, error) {
	n, err := count(ctx, repo.db, `SELECT COUNT(*) FROM news`)
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func (repo *NewsRepo) Get(ctx context.Context, id int64) (*entity.News, error) {
	const query = `
SELECT id, title, text, date, created_at
FROM news
WHERE id = $1
LIMIT 1`
	var n entity.News
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&n.ID, &n.Title, &n.Text, &n.Date, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &n, nil
}

func (repo *NewsRepo) Create(ctx context.Context, n *entity.News) error {
	const query = `
INSERT INTO news (title, text, date, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	if err := repo.db.QueryRowContext(ctx, query, n.Title, n.Text, n.Date, n.CreatedAt).Scan(&n.ID); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
