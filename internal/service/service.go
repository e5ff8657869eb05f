// Package service содержит бизнес-логику: каталог фильмов и пользователей,
// дружбу, лайки и популярность, рекомендации и поиск.
package service

import (
	"context"
	"log/slog"

	"film-service/internal/store"

	"github.com/go-playground/validator/v10"
)

// Значения лимитов по умолчанию для транспортного слоя.
const (
	DefaultPopularCount        = 10
	DefaultRecommendationLimit = 10
)

// Services набор всех сервисов поверх одного хранилища.
type Services struct {
	Films           *FilmService
	Users           *UserService
	Directors       *DirectorService
	Reference       *ReferenceService
	Friendships     *FriendshipService
	Likes           *LikeService
	Recommendations *RecommendationService
	Search          *SearchService
}

// New собирает сервисы. Хранилище выбирается вызывающим кодом.
func New(st store.Store, v *validator.Validate, logger *slog.Logger) *Services {
	return &Services{
		Films:           NewFilmService(st, st, v, logger),
		Users:           NewUserService(st, v, logger),
		Directors:       NewDirectorService(st, v, logger),
		Reference:       NewReferenceService(st, logger),
		Friendships:     NewFriendshipService(st, st, logger),
		Likes:           NewLikeService(st, st, st, logger),
		Recommendations: NewRecommendationService(st, st, st, logger),
		Search:          NewSearchService(st, logger),
	}
}

// existence общий для сервисов способ проверить наличие фильма и пользователя.
type existence struct {
	films store.FilmStore
	users store.UserStore
}

func (e existence) requireFilm(ctx context.Context, id int64) error {
	ok, err := e.films.FilmExists(ctx, id)
	if err != nil {
		return storageFailure(err)
	}
	if !ok {
		return notFound("Фильм с id %d не найден", id)
	}
	return nil
}

func (e existence) requireUser(ctx context.Context, id int64) error {
	ok, err := e.users.UserExists(ctx, id)
	if err != nil {
		return storageFailure(err)
	}
	if !ok {
		return notFound("Пользователь с id %d не найден", id)
	}
	return nil
}

func clamp(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
