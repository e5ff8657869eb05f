package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"film-service/internal/domain"
)

func (s *PostgresStore) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	genres := []domain.Genre{}
	if err := s.db.SelectContext(ctx, &genres, `SELECT id, name FROM genres ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *PostgresStore) GetGenre(ctx context.Context, id int64) (*domain.Genre, error) {
	var g domain.Genre
	if err := s.db.GetContext(ctx, &g, `SELECT id, name FROM genres WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	return &g, nil
}

func (s *PostgresStore) ListMpa(ctx context.Context) ([]domain.MpaRating, error) {
	ratings := []domain.MpaRating{}
	if err := s.db.SelectContext(ctx, &ratings, `SELECT id, name, COALESCE(description, '') AS description FROM mpa_ratings ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list mpa ratings: %w", err)
	}
	return ratings, nil
}

func (s *PostgresStore) GetMpa(ctx context.Context, id int64) (*domain.MpaRating, error) {
	var m domain.MpaRating
	query := `SELECT id, name, COALESCE(description, '') AS description FROM mpa_ratings WHERE id = $1`
	if err := s.db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMpaNotFound
		}
		return nil, fmt.Errorf("failed to get mpa rating: %w", err)
	}
	return &m, nil
}

func (s *PostgresStore) ListDirectors(ctx context.Context) ([]domain.Director, error) {
	directors := []domain.Director{}
	if err := s.db.SelectContext(ctx, &directors, `SELECT id, name FROM directors ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list directors: %w", err)
	}
	return directors, nil
}

func (s *PostgresStore) GetDirector(ctx context.Context, id int64) (*domain.Director, error) {
	var d domain.Director
	if err := s.db.GetContext(ctx, &d, `SELECT id, name FROM directors WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDirectorNotFound
		}
		return nil, fmt.Errorf("failed to get director: %w", err)
	}
	return &d, nil
}

func (s *PostgresStore) CreateDirector(ctx context.Context, director *domain.Director) error {
	if err := s.db.GetContext(ctx, &director.ID, `INSERT INTO directors (name) VALUES ($1) RETURNING id`, director.Name); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create director in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create director: %w", err)
	}
	s.logger.InfoContext(ctx, "Director created successfully in DB", slog.Int64("directorID", director.ID))
	return nil
}

func (s *PostgresStore) UpdateDirector(ctx context.Context, director *domain.Director) error {
	result, err := s.db.ExecContext(ctx, `UPDATE directors SET name = $1 WHERE id = $2`, director.Name, director.ID)
	if err != nil {
		return fmt.Errorf("failed to update director: %w", err)
	}
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return ErrDirectorNotFound
	}
	return nil
}

// DeleteDirector удаляет режиссера; связи с фильмами удаляются каскадно.
func (s *PostgresStore) DeleteDirector(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM directors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete director: %w", err)
	}
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return ErrDirectorNotFound
	}
	return nil
}
