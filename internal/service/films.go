package service

import (
	"context"
	"errors"
	"log/slog"

	"film-service/internal/domain"
	"film-service/internal/store"

	"github.com/go-playground/validator/v10"
)

// FilmService создание, изменение и чтение фильмов.
type FilmService struct {
	films    store.FilmStore
	refs     store.ReferenceStore
	validate *validator.Validate
	logger   *slog.Logger
}

func NewFilmService(films store.FilmStore, refs store.ReferenceStore, v *validator.Validate, logger *slog.Logger) *FilmService {
	return &FilmService{films: films, refs: refs, validate: v, logger: logger}
}

// Create проверяет фильм, разрешает MPA, жанры и режиссеров и сохраняет его с новым id.
func (s *FilmService) Create(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	if err := validateStruct(s.validate, film); err != nil {
		s.logger.WarnContext(ctx, "Film validation failed", slog.String("error", err.Error()))
		return nil, err
	}
	film = film.Clone()
	if err := s.resolveReferences(ctx, film); err != nil {
		return nil, err
	}
	film.ID = 0
	if err := s.films.CreateFilm(ctx, film); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create film", slog.String("error", err.Error()))
		return nil, fromStore(err)
	}
	s.logger.InfoContext(ctx, "Film created", slog.Int64("filmID", film.ID), slog.String("name", film.Name))
	return s.GetByID(ctx, film.ID)
}

// Update полностью заменяет поля фильма и наборы жанров и режиссеров.
func (s *FilmService) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	if err := validateStruct(s.validate, film); err != nil {
		s.logger.WarnContext(ctx, "Film validation failed", slog.Int64("filmID", film.ID), slog.String("error", err.Error()))
		return nil, err
	}
	if err := (existence{films: s.films}).requireFilm(ctx, film.ID); err != nil {
		s.logger.WarnContext(ctx, "Film to update not found", slog.Int64("filmID", film.ID))
		return nil, err
	}
	film = film.Clone()
	if err := s.resolveReferences(ctx, film); err != nil {
		return nil, err
	}
	if err := s.films.UpdateFilm(ctx, film); err != nil {
		if errors.Is(err, store.ErrFilmNotFound) {
			return nil, notFound("Фильм с id %d не найден", film.ID)
		}
		return nil, fromStore(err)
	}
	s.logger.InfoContext(ctx, "Film updated", slog.Int64("filmID", film.ID))
	return s.GetByID(ctx, film.ID)
}

func (s *FilmService) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	film, err := s.films.GetFilm(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrFilmNotFound) {
			s.logger.WarnContext(ctx, "Film not found", slog.Int64("filmID", id))
			return nil, notFound("Фильм с id %d не найден", id)
		}
		return nil, fromStore(err)
	}
	return film, nil
}

// List возвращает все фильмы по возрастанию id.
func (s *FilmService) List(ctx context.Context) ([]*domain.Film, error) {
	films, err := s.films.ListFilms(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	s.logger.DebugContext(ctx, "Films listed", slog.Int("count", len(films)))
	return films, nil
}

func (s *FilmService) Delete(ctx context.Context, id int64) error {
	if err := s.films.DeleteFilm(ctx, id); err != nil {
		if errors.Is(err, store.ErrFilmNotFound) {
			return notFound("Фильм с id %d не найден", id)
		}
		return fromStore(err)
	}
	s.logger.InfoContext(ctx, "Film deleted", slog.Int64("filmID", id))
	return nil
}

// resolveReferences заменяет ссылки на MPA, жанры и режиссеров полными записями.
// MPA с id 0 означает отсутствие рейтинга.
func (s *FilmService) resolveReferences(ctx context.Context, film *domain.Film) error {
	if film.Mpa != nil {
		if film.Mpa.ID == 0 {
			film.Mpa = nil
		} else {
			mpa, err := s.refs.GetMpa(ctx, film.Mpa.ID)
			if err != nil {
				if errors.Is(err, store.ErrMpaNotFound) {
					return notFound("Рейтинг MPA с id %d не найден", film.Mpa.ID)
				}
				return fromStore(err)
			}
			film.Mpa = mpa
		}
	}

	for i, g := range film.Genres {
		genre, err := s.refs.GetGenre(ctx, g.ID)
		if err != nil {
			if errors.Is(err, store.ErrGenreNotFound) {
				return notFound("Жанр с id %d не найден", g.ID)
			}
			return fromStore(err)
		}
		film.Genres[i] = *genre
	}

	for i, d := range film.Directors {
		director, err := s.refs.GetDirector(ctx, d.ID)
		if err != nil {
			if errors.Is(err, store.ErrDirectorNotFound) {
				return notFound("Режиссер с id %d не найден", d.ID)
			}
			return fromStore(err)
		}
		film.Directors[i] = *director
	}
	return nil
}
