package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"film-service/internal/domain"
	"film-service/internal/store"
)

// LikeService лайки и производные от них рейтинги.
type LikeService struct {
	films  store.FilmStore
	likes  store.LikeStore
	exists existence
	logger *slog.Logger
}

func NewLikeService(films store.FilmStore, users store.UserStore, likes store.LikeStore, logger *slog.Logger) *LikeService {
	return &LikeService{
		films:  films,
		likes:  likes,
		exists: existence{films: films, users: users},
		logger: logger,
	}
}

// AddLike ставит лайк. Повторный лайк того же пользователя отклоняется.
func (s *LikeService) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := s.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.likes.AddLike(ctx, filmID, userID); err != nil {
		if errors.Is(err, store.ErrLikeAlreadyExists) {
			s.logger.WarnContext(ctx, "Duplicate like rejected", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
			return invalidState("Пользователь %d уже поставил лайк фильму %d", userID, filmID)
		}
		return fromStore(err)
	}
	s.logger.InfoContext(ctx, "Like added", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
	return nil
}

// RemoveLike снимает лайк. Снятие отсутствующего лайка ничего не делает.
func (s *LikeService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := s.requireFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.likes.RemoveLike(ctx, filmID, userID); err != nil {
		return fromStore(err)
	}
	s.logger.InfoContext(ctx, "Like removed", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
	return nil
}

// LikeCount число уникальных лайков фильма.
func (s *LikeService) LikeCount(ctx context.Context, filmID int64) (int, error) {
	if err := s.exists.requireFilm(ctx, filmID); err != nil {
		return 0, err
	}
	likers, err := s.likes.FilmLikers(ctx, filmID)
	if err != nil {
		return 0, fromStore(err)
	}
	return len(likers), nil
}

// PopularFilms до count фильмов по убыванию числа лайков, при равенстве по возрастанию id.
// count меньше 1 приводится к 1.
func (s *LikeService) PopularFilms(ctx context.Context, count int) ([]*domain.Film, error) {
	count = clamp(count)
	films, err := s.films.ListFilms(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	slices.SortStableFunc(films, byPopularity)
	if len(films) > count {
		films = films[:count]
	}
	s.logger.DebugContext(ctx, "Popular films computed", slog.Int("requested", count), slog.Int("returned", len(films)))
	return films, nil
}

// CommonLikedFilms фильмы, которые лайкнули оба пользователя, по убыванию общего числа лайков.
func (s *LikeService) CommonLikedFilms(ctx context.Context, userID, otherID int64) ([]*domain.Film, error) {
	for _, id := range []int64{userID, otherID} {
		if err := s.exists.requireUser(ctx, id); err != nil {
			return nil, err
		}
	}
	mine, err := s.likes.UserLikes(ctx, userID)
	if err != nil {
		return nil, fromStore(err)
	}
	theirs, err := s.likes.UserLikes(ctx, otherID)
	if err != nil {
		return nil, fromStore(err)
	}
	common := intersect(mine, theirs)
	if len(common) == 0 {
		return []*domain.Film{}, nil
	}

	counts, err := s.likes.LikeCounts(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	scores := make(map[int64]int, len(common))
	for _, id := range common {
		scores[id] = counts[id]
	}
	films, err := s.films.GetFilmsByIDs(ctx, rankIDs(scores, -1))
	if err != nil {
		return nil, fromStore(err)
	}
	return films, nil
}

func (s *LikeService) requireFilmAndUser(ctx context.Context, filmID, userID int64) error {
	if err := s.exists.requireFilm(ctx, filmID); err != nil {
		s.logger.WarnContext(ctx, "Film not found", slog.Int64("filmID", filmID))
		return err
	}
	if err := s.exists.requireUser(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "User not found", slog.Int64("userID", userID))
		return err
	}
	return nil
}
