package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"film-service/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const selectFilmsQuery = `SELECT f.id, f.name, f.description, f.release_date, f.duration,
       m.id AS mpa_id, m.name AS mpa_name, m.description AS mpa_description
  FROM films f
  LEFT JOIN mpa_ratings m ON m.id = f.mpa_id`

// filmRow строка выборки фильма вместе с рейтингом MPA.
type filmRow struct {
	ID             int64          `db:"id"`
	Name           string         `db:"name"`
	Description    sql.NullString `db:"description"`
	ReleaseDate    domain.Date    `db:"release_date"`
	Duration       int            `db:"duration"`
	MpaID          sql.NullInt64  `db:"mpa_id"`
	MpaName        sql.NullString `db:"mpa_name"`
	MpaDescription sql.NullString `db:"mpa_description"`
}

func (r filmRow) toDomain() *domain.Film {
	f := &domain.Film{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
		ReleaseDate: r.ReleaseDate,
		Duration:    r.Duration,
		Genres:      []domain.Genre{},
		Directors:   []domain.Director{},
		Likes:       []int64{},
	}
	if r.MpaID.Valid {
		f.Mpa = &domain.MpaRating{ID: r.MpaID.Int64, Name: r.MpaName.String, Description: r.MpaDescription.String}
	}
	return f
}

// CreateFilm создает фильм и его связи с жанрами и режиссерами в одной транзакции.
func (s *PostgresStore) CreateFilm(ctx context.Context, film *domain.Film) error {
	s.logger.DebugContext(ctx, "Executing Create film query", slog.String("name", film.Name))

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `INSERT INTO films (name, description, release_date, duration, mpa_id)
                  VALUES ($1, $2, $3, $4, $5) RETURNING id`
		if err := tx.GetContext(ctx, &film.ID, query,
			film.Name, film.Description, film.ReleaseDate, film.Duration, mpaID(film),
		); err != nil {
			return err
		}
		return replaceFilmLinks(ctx, tx, film)
	})
	if err != nil {
		if mapped := translatePQError(err, nil); mapped != nil {
			s.logger.WarnContext(ctx, "Film references unknown entity", slog.String("error", err.Error()))
			return mapped
		}
		s.logger.ErrorContext(ctx, "Failed to create film in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create film: %w", err)
	}
	s.logger.InfoContext(ctx, "Film created successfully in DB", slog.Int64("filmID", film.ID))
	return nil
}

// UpdateFilm полностью заменяет поля фильма и наборы жанров и режиссеров.
func (s *PostgresStore) UpdateFilm(ctx context.Context, film *domain.Film) error {
	s.logger.DebugContext(ctx, "Executing Update film query", slog.Int64("filmID", film.ID))

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `UPDATE films SET name = $1, description = $2, release_date = $3, duration = $4, mpa_id = $5
                  WHERE id = $6`
		result, err := tx.ExecContext(ctx, query,
			film.Name, film.Description, film.ReleaseDate, film.Duration, mpaID(film), film.ID)
		if err != nil {
			return err
		}
		if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
			return ErrFilmNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM film_genres WHERE film_id = $1`, film.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM film_directors WHERE film_id = $1`, film.ID); err != nil {
			return err
		}
		return replaceFilmLinks(ctx, tx, film)
	})
	if err != nil {
		if errors.Is(err, ErrFilmNotFound) {
			s.logger.WarnContext(ctx, "No film found to update in DB", slog.Int64("filmID", film.ID))
			return ErrFilmNotFound
		}
		if mapped := translatePQError(err, nil); mapped != nil {
			return mapped
		}
		s.logger.ErrorContext(ctx, "Failed to update film in DB", slog.Int64("filmID", film.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update film: %w", err)
	}
	s.logger.InfoContext(ctx, "Film updated successfully in DB", slog.Int64("filmID", film.ID))
	return nil
}

func (s *PostgresStore) GetFilm(ctx context.Context, id int64) (*domain.Film, error) {
	var row filmRow
	s.logger.DebugContext(ctx, "Executing GetFilm query", slog.Int64("filmID", id))
	if err := s.db.GetContext(ctx, &row, selectFilmsQuery+` WHERE f.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get film by ID from DB", slog.Int64("filmID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get film by ID: %w", err)
	}
	films := []*domain.Film{row.toDomain()}
	if err := s.loadFilmDetails(ctx, films); err != nil {
		return nil, err
	}
	return films[0], nil
}

// GetFilmsByIDs возвращает существующие фильмы в порядке переданных id.
func (s *PostgresStore) GetFilmsByIDs(ctx context.Context, ids []int64) ([]*domain.Film, error) {
	if len(ids) == 0 {
		return []*domain.Film{}, nil
	}
	films, err := s.selectFilms(ctx, selectFilmsQuery+` WHERE f.id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*domain.Film, len(films))
	for _, f := range films {
		byID[f.ID] = f
	}
	ordered := make([]*domain.Film, 0, len(films))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			ordered = append(ordered, f)
		}
	}
	return ordered, nil
}

func (s *PostgresStore) ListFilms(ctx context.Context) ([]*domain.Film, error) {
	return s.selectFilms(ctx, selectFilmsQuery+` ORDER BY f.id`)
}

func (s *PostgresStore) DeleteFilm(ctx context.Context, id int64) error {
	s.logger.DebugContext(ctx, "Executing Delete film query", slog.Int64("filmID", id))
	result, err := s.db.ExecContext(ctx, `DELETE FROM films WHERE id = $1`, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete film from DB", slog.Int64("filmID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete film: %w", err)
	}
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return ErrFilmNotFound
	}
	s.logger.InfoContext(ctx, "Film deleted from DB", slog.Int64("filmID", id))
	return nil
}

func (s *PostgresStore) FilmExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM films WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("failed to check film existence: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) selectFilms(ctx context.Context, query string, args ...any) ([]*domain.Film, error) {
	var rows []filmRow
	s.logger.DebugContext(ctx, "Executing select films query", slog.String("query", query))
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list films from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list films: %w", err)
	}
	films := make([]*domain.Film, 0, len(rows))
	for _, r := range rows {
		films = append(films, r.toDomain())
	}
	if err := s.loadFilmDetails(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// loadFilmDetails догружает жанры, режиссеров и лайки тремя запросами на весь набор фильмов.
func (s *PostgresStore) loadFilmDetails(ctx context.Context, films []*domain.Film) error {
	if len(films) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Film, len(films))
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		byID[f.ID] = f
		ids = append(ids, f.ID)
	}

	var genres []struct {
		FilmID int64 `db:"film_id"`
		domain.Genre
	}
	if err := s.db.SelectContext(ctx, &genres, `SELECT fg.film_id, g.id, g.name
          FROM film_genres fg JOIN genres g ON g.id = fg.genre_id
         WHERE fg.film_id = ANY($1) ORDER BY fg.film_id, g.id`, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load film genres: %w", err)
	}
	for _, g := range genres {
		byID[g.FilmID].Genres = append(byID[g.FilmID].Genres, g.Genre)
	}

	var directors []struct {
		FilmID int64 `db:"film_id"`
		domain.Director
	}
	if err := s.db.SelectContext(ctx, &directors, `SELECT fd.film_id, d.id, d.name
          FROM film_directors fd JOIN directors d ON d.id = fd.director_id
         WHERE fd.film_id = ANY($1) ORDER BY fd.film_id, d.id`, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load film directors: %w", err)
	}
	for _, d := range directors {
		byID[d.FilmID].Directors = append(byID[d.FilmID].Directors, d.Director)
	}

	var likes []domain.Like
	if err := s.db.SelectContext(ctx, &likes, `SELECT film_id, user_id FROM likes
         WHERE film_id = ANY($1) ORDER BY film_id, user_id`, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to load film likes: %w", err)
	}
	for _, l := range likes {
		byID[l.FilmID].Likes = append(byID[l.FilmID].Likes, l.UserID)
	}
	return nil
}

func replaceFilmLinks(ctx context.Context, tx *sqlx.Tx, film *domain.Film) error {
	for _, id := range uniqueSorted(film.GenreIDs()) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2)`, film.ID, id); err != nil {
			return err
		}
	}
	for _, id := range uniqueSorted(film.DirectorIDs()) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO film_directors (film_id, director_id) VALUES ($1, $2)`, film.ID, id); err != nil {
			return err
		}
	}
	return nil
}

func mpaID(film *domain.Film) sql.NullInt64 {
	if film.Mpa == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: film.Mpa.ID, Valid: true}
}

// inTx выполняет fn в транзакции: коммит при успехе, откат при ошибке.
func (s *PostgresStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
		return err
	}
	return tx.Commit()
}
