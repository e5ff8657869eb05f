package store

import (
	"context"
	"errors"

	"film-service/internal/domain"
)

var (
	ErrFilmNotFound            = errors.New("film not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrGenreNotFound           = errors.New("genre not found")
	ErrMpaNotFound             = errors.New("mpa rating not found")
	ErrDirectorNotFound        = errors.New("director not found")
	ErrLikeAlreadyExists       = errors.New("like already exists")
	ErrFriendshipAlreadyExists = errors.New("friendship already exists")
	ErrFriendshipNotFound      = errors.New("friendship not found")
)

// FilmStore хранит фильмы вместе с ассоциациями жанров и режиссеров.
// Фильмы возвращаются с заполненными Mpa, Genres (по возрастанию id),
// Directors (по возрастанию id) и Likes.
type FilmStore interface {
	CreateFilm(ctx context.Context, film *domain.Film) error
	UpdateFilm(ctx context.Context, film *domain.Film) error
	GetFilm(ctx context.Context, id int64) (*domain.Film, error)
	GetFilmsByIDs(ctx context.Context, ids []int64) ([]*domain.Film, error)
	ListFilms(ctx context.Context) ([]*domain.Film, error)
	DeleteFilm(ctx context.Context, id int64) error
	FilmExists(ctx context.Context, id int64) (bool, error)
}

// UserStore хранит пользователей. DeleteUser удаляет также лайки и связи дружбы.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) ([]*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
	UserExists(ctx context.Context, id int64) (bool, error)
}

// LikeStore хранит отношение "пользователь лайкнул фильм".
type LikeStore interface {
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	FilmLikers(ctx context.Context, filmID int64) ([]int64, error)
	UserLikes(ctx context.Context, userID int64) ([]int64, error)
	LikeCounts(ctx context.Context) (map[int64]int, error)
}

// FriendshipStore хранит направленные ребра дружбы.
type FriendshipStore interface {
	AddFriendship(ctx context.Context, f domain.Friendship) error
	UpsertFriendship(ctx context.Context, f domain.Friendship) error
	GetFriendship(ctx context.Context, userID, friendID int64) (*domain.Friendship, error)
	DeleteFriendship(ctx context.Context, userID, friendID int64) error
	OutgoingFriendships(ctx context.Context, userID int64) ([]domain.Friendship, error)
	IncomingFriendships(ctx context.Context, userID int64) ([]domain.Friendship, error)
}

// ReferenceStore справочники: жанры и рейтинги MPA (только чтение) и режиссеры.
type ReferenceStore interface {
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	GetGenre(ctx context.Context, id int64) (*domain.Genre, error)
	ListMpa(ctx context.Context) ([]domain.MpaRating, error)
	GetMpa(ctx context.Context, id int64) (*domain.MpaRating, error)
	ListDirectors(ctx context.Context) ([]domain.Director, error)
	GetDirector(ctx context.Context, id int64) (*domain.Director, error)
	CreateDirector(ctx context.Context, director *domain.Director) error
	UpdateDirector(ctx context.Context, director *domain.Director) error
	DeleteDirector(ctx context.Context, id int64) error
}

// Store объединяет все хранилища одного бэкенда.
type Store interface {
	FilmStore
	UserStore
	LikeStore
	FriendshipStore
	ReferenceStore
	Close() error
}

// Справочные данные, которыми заполняются оба варианта хранилища.
var (
	SeedGenres = []domain.Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}
	SeedMpa = []domain.MpaRating{
		{ID: 1, Name: "G", Description: "У фильма нет возрастных ограничений"},
		{ID: 2, Name: "PG", Description: "Детям рекомендуется смотреть фильм с родителями"},
		{ID: 3, Name: "PG-13", Description: "Детям до 13 лет просмотр не желателен"},
		{ID: 4, Name: "R", Description: "Лицам до 17 лет просматривать фильм можно только в присутствии взрослого"},
		{ID: 5, Name: "NC-17", Description: "Лицам до 18 лет просмотр запрещён"},
	}
)
