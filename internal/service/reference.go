package service

import (
	"context"
	"errors"
	"log/slog"

	"film-service/internal/domain"
	"film-service/internal/store"
)

// ReferenceService чтение справочников жанров и рейтингов MPA.
type ReferenceService struct {
	refs   store.ReferenceStore
	logger *slog.Logger
}

func NewReferenceService(refs store.ReferenceStore, logger *slog.Logger) *ReferenceService {
	return &ReferenceService{refs: refs, logger: logger}
}

func (s *ReferenceService) Genres(ctx context.Context) ([]domain.Genre, error) {
	genres, err := s.refs.ListGenres(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	return genres, nil
}

func (s *ReferenceService) GenreByID(ctx context.Context, id int64) (*domain.Genre, error) {
	genre, err := s.refs.GetGenre(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrGenreNotFound) {
			return nil, notFound("Жанр с id %d не найден", id)
		}
		return nil, fromStore(err)
	}
	return genre, nil
}

func (s *ReferenceService) MpaRatings(ctx context.Context) ([]domain.MpaRating, error) {
	ratings, err := s.refs.ListMpa(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	return ratings, nil
}

func (s *ReferenceService) MpaByID(ctx context.Context, id int64) (*domain.MpaRating, error) {
	mpa, err := s.refs.GetMpa(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrMpaNotFound) {
			return nil, notFound("Рейтинг MPA с id %d не найден", id)
		}
		return nil, fromStore(err)
	}
	return mpa, nil
}
