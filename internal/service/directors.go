package service

import (
	"context"
	"errors"
	"log/slog"

	"film-service/internal/domain"
	"film-service/internal/store"

	"github.com/go-playground/validator/v10"
)

type DirectorService struct {
	refs     store.ReferenceStore
	validate *validator.Validate
	logger   *slog.Logger
}

func NewDirectorService(refs store.ReferenceStore, v *validator.Validate, logger *slog.Logger) *DirectorService {
	return &DirectorService{refs: refs, validate: v, logger: logger}
}

func (s *DirectorService) Create(ctx context.Context, director *domain.Director) (*domain.Director, error) {
	if err := validateStruct(s.validate, director); err != nil {
		return nil, err
	}
	director.ID = 0
	if err := s.refs.CreateDirector(ctx, director); err != nil {
		return nil, fromStore(err)
	}
	s.logger.InfoContext(ctx, "Director created", slog.Int64("directorID", director.ID))
	created := *director
	return &created, nil
}

func (s *DirectorService) Update(ctx context.Context, director *domain.Director) (*domain.Director, error) {
	if err := validateStruct(s.validate, director); err != nil {
		return nil, err
	}
	if err := s.refs.UpdateDirector(ctx, director); err != nil {
		if errors.Is(err, store.ErrDirectorNotFound) {
			return nil, notFound("Режиссер с id %d не найден", director.ID)
		}
		return nil, fromStore(err)
	}
	updated := *director
	return &updated, nil
}

func (s *DirectorService) GetByID(ctx context.Context, id int64) (*domain.Director, error) {
	director, err := s.refs.GetDirector(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrDirectorNotFound) {
			return nil, notFound("Режиссер с id %d не найден", id)
		}
		return nil, fromStore(err)
	}
	return director, nil
}

func (s *DirectorService) List(ctx context.Context) ([]domain.Director, error) {
	directors, err := s.refs.ListDirectors(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	return directors, nil
}

// Delete удаляет режиссера и отвязывает его от фильмов.
func (s *DirectorService) Delete(ctx context.Context, id int64) error {
	if err := s.refs.DeleteDirector(ctx, id); err != nil {
		if errors.Is(err, store.ErrDirectorNotFound) {
			return notFound("Режиссер с id %d не найден", id)
		}
		return fromStore(err)
	}
	s.logger.InfoContext(ctx, "Director deleted", slog.Int64("directorID", id))
	return nil
}
