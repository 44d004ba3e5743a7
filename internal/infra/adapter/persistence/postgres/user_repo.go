package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"newsnotes/internal/domain/entity"
	"newsnotes/internal/repository"
)

// UserRepo stores user accounts in PostgreSQL.
type UserRepo struct{ db Querier }

// NewUserRepo returns a repository.UserRepository backed by db.
func NewUserRepo(db Querier) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	const query = `
SELECT id, username, password_hash, created_at
FROM users
WHERE id = $1
LIMIT 1`
	return repo.getOne(ctx, "GetByID", query, id)
}

func (repo *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	const query = `
SELECT id, username, password_hash, created_at
FROM users
WHERE username = $1
LIMIT 1`
	return repo.getOne(ctx, "GetByUsername", query, username)
}

func (repo *UserRepo) getOne(ctx context.Context, op, query string, arg interface{}) (*entity.User, error) {
	var u entity.User
	err := repo.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

func (repo *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const query = `
INSERT INTO users (username, password_hash, created_at)
VALUES ($1, $2, $3)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", mapUniqueViolation(err))
	}
	return nil
}

func (repo *UserRepo) Count(ctx context.Context) (int64, error) {
	n, err := count(ctx, repo.db, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}
