package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"newsnotes/internal/config"
	hhttp "newsnotes/internal/handler/http"
	"newsnotes/internal/infra/adapter/persistence/memory"
	"newsnotes/internal/infra/adapter/persistence/postgres"
	"newsnotes/internal/infra/db"
	"newsnotes/internal/repository"
	"newsnotes/internal/resilience/circuitbreaker"
)

// Storage bundles the repositories of one storage driver.
type Storage struct {
	News     repository.NewsRepository
	Comments repository.CommentRepository
	Notes    repository.NoteRepository
	Users    repository.UserRepository

	// DB is nil for the in-memory driver.
	DB hhttp.Database

	close func() error
}

// Close releases the database connection, if any.
func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// MemoryStorage returns fresh in-memory repositories.
func MemoryStorage() *Storage {
	store := memory.NewStore()
	return &Storage{
		News:     store.News(),
		Comments: store.Comments(),
		Notes:    store.Notes(),
		Users:    store.Users(),
	}
}

// PostgresStorage returns repositories over database. With breaker set
// every query goes through a circuit breaker.
func PostgresStorage(database *sql.DB, breaker bool) *Storage {
	var q postgres.Querier = database
	var health hhttp.Database = database
	if breaker {
		cb := circuitbreaker.NewDBCircuitBreaker(database)
		q, health = cb, cb
	}
	return &Storage{
		News:     postgres.NewNewsRepo(q),
		Comments: postgres.NewCommentRepo(q),
		Notes:    postgres.NewNoteRepo(q),
		Users:    postgres.NewUserRepo(q),
		DB:       health,
		close:    database.Close,
	}
}

// OpenStorage opens the storage selected by cfg.Storage.Driver and, for
// PostgreSQL, creates the schema.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return MemoryStorage(), nil
	case config.StoragePostgres:
		database, err := db.Open(ctx, cfg.Storage.DatabaseURL, db.ConnectionConfigFromEnv())
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(ctx, database); err != nil {
			_ = database.Close()
			return nil, err
		}
		logger.Info("database ready", slog.Bool("circuit_breaker", cfg.Storage.CircuitBreaker))
		return PostgresStorage(database, cfg.Storage.CircuitBreaker), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
