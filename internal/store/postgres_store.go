package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

var _ Store = (*PostgresStore)(nil)

// Коды ошибок PostgreSQL, которые переводятся в доменные ошибки хранилища.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// PostgresStore реализует Store для PostgreSQL.
type PostgresStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresStore создает новый экземпляр PostgresStore.
func NewPostgresStore(db *sqlx.DB, logger *slog.Logger) (*PostgresStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresStore{db: db, logger: logger}, nil
}

// EnsureSchema создает таблицы, если их нет, и заполняет справочники жанров и MPA.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Applying database schema")
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		s.logger.ErrorContext(ctx, "Failed to apply schema", slog.String("error", err.Error()))
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, g := range SeedGenres {
		if _, err := tx.ExecContext(ctx, `INSERT INTO genres (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, g.ID, g.Name); err != nil {
			return fmt.Errorf("failed to seed genre %d: %w", g.ID, err)
		}
	}
	for _, m := range SeedMpa {
		if _, err := tx.ExecContext(ctx, `INSERT INTO mpa_ratings (id, name, description) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`, m.ID, m.Name, m.Description); err != nil {
			return fmt.Errorf("failed to seed mpa rating %d: %w", m.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	s.logger.InfoContext(ctx, "Database schema is ready")
	return nil
}

// Close закрывает соединение с базой данных.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// translatePQError переводит нарушения ограничений в ошибки хранилища.
// Нарушение внешнего ключа определяется по имени ограничения.
func translatePQError(err error, onUnique error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return onUnique
	case pqForeignKeyViolation:
		constraint := pqErr.Constraint
		switch {
		case strings.Contains(constraint, "mpa_id"):
			return ErrMpaNotFound
		case strings.Contains(constraint, "genre_id"):
			return ErrGenreNotFound
		case strings.Contains(constraint, "director_id"):
			return ErrDirectorNotFound
		case strings.Contains(constraint, "film_id"):
			return ErrFilmNotFound
		case strings.Contains(constraint, "user_id"), strings.Contains(constraint, "friend_id"):
			return ErrUserNotFound
		}
	}
	return nil
}
