package service

import (
	"context"
	"log/slog"

	"film-service/internal/domain"
	"film-service/internal/store"
)

// RecommendationService рекомендации по совместным лайкам.
type RecommendationService struct {
	films  store.FilmStore
	likes  store.LikeStore
	exists existence
	logger *slog.Logger
}

func NewRecommendationService(films store.FilmStore, users store.UserStore, likes store.LikeStore, logger *slog.Logger) *RecommendationService {
	return &RecommendationService{
		films:  films,
		likes:  likes,
		exists: existence{films: films, users: users},
		logger: logger,
	}
}

// Recommendations возвращает до limit фильмов, которые лайкнули соседи пользователя,
// но не лайкнул он сам. Сосед: другой пользователь, лайкнувший хотя бы один фильм
// пользователя. Счет фильма равен числу соседей, лайкнувших его; порядок по
// убыванию счета, при равенстве по возрастанию id.
func (s *RecommendationService) Recommendations(ctx context.Context, userID int64, limit int) ([]*domain.Film, error) {
	limit = clamp(limit)
	if err := s.exists.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	liked, err := s.likes.UserLikes(ctx, userID)
	if err != nil {
		return nil, fromStore(err)
	}
	if len(liked) == 0 {
		return []*domain.Film{}, nil
	}
	own := make(map[int64]struct{}, len(liked))
	for _, id := range liked {
		own[id] = struct{}{}
	}

	neighbors := make(map[int64]struct{})
	for _, filmID := range liked {
		likers, err := s.likes.FilmLikers(ctx, filmID)
		if err != nil {
			return nil, fromStore(err)
		}
		for _, u := range likers {
			if u != userID {
				neighbors[u] = struct{}{}
			}
		}
	}
	if len(neighbors) == 0 {
		return []*domain.Film{}, nil
	}

	scores := make(map[int64]int)
	for neighbor := range neighbors {
		films, err := s.likes.UserLikes(ctx, neighbor)
		if err != nil {
			return nil, fromStore(err)
		}
		for _, filmID := range films {
			if _, mine := own[filmID]; !mine {
				scores[filmID]++
			}
		}
	}

	recommended, err := s.films.GetFilmsByIDs(ctx, rankIDs(scores, limit))
	if err != nil {
		return nil, fromStore(err)
	}
	s.logger.DebugContext(ctx, "Recommendations computed",
		slog.Int64("userID", userID),
		slog.Int("neighbors", len(neighbors)),
		slog.Int("candidates", len(scores)),
		slog.Int("returned", len(recommended)))
	return recommended, nil
}
