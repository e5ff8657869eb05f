package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter создает и настраивает HTTP маршрутизатор.
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(h.RequestIDMiddleware, h.AccessLogMiddleware)

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	films := router.PathPrefix("/films").Subrouter()
	films.HandleFunc("", h.GetFilms).Methods(http.MethodGet)
	films.HandleFunc("", h.CreateFilm).Methods(http.MethodPost)
	films.HandleFunc("", h.UpdateFilm).Methods(http.MethodPut)
	// Статические пути раньше /{id}
	films.HandleFunc("/popular", h.GetPopularFilms).Methods(http.MethodGet)
	films.HandleFunc("/common", h.GetCommonFilms).Methods(http.MethodGet)
	films.HandleFunc("/search", h.SearchFilms).Methods(http.MethodGet)
	films.HandleFunc("/{id}", h.GetFilmByID).Methods(http.MethodGet)
	films.HandleFunc("/{id}", h.DeleteFilm).Methods(http.MethodDelete)
	films.HandleFunc("/{id}/like/{userId}", h.AddLike).Methods(http.MethodPut)
	films.HandleFunc("/{id}/like/{userId}", h.RemoveLike).Methods(http.MethodDelete)
	films.HandleFunc("/{id}/likes/count", h.GetLikeCount).Methods(http.MethodGet)

	users := router.PathPrefix("/users").Subrouter()
	users.HandleFunc("", h.GetUsers).Methods(http.MethodGet)
	users.HandleFunc("", h.CreateUser).Methods(http.MethodPost)
	users.HandleFunc("", h.UpdateUser).Methods(http.MethodPut)
	users.HandleFunc("/{id}", h.GetUserByID).Methods(http.MethodGet)
	users.HandleFunc("/{id}", h.DeleteUser).Methods(http.MethodDelete)
	users.HandleFunc("/{id}/friends", h.GetFriends).Methods(http.MethodGet)
	users.HandleFunc("/{id}/friends/requests", h.GetFriendRequests).Methods(http.MethodGet)
	users.HandleFunc("/{id}/friends/common/{otherId}", h.GetCommonFriends).Methods(http.MethodGet)
	users.HandleFunc("/{id}/friends/{friendId}", h.SendFriendRequest).Methods(http.MethodPut)
	users.HandleFunc("/{id}/friends/{friendId}", h.RemoveFriend).Methods(http.MethodDelete)
	users.HandleFunc("/{id}/friends/{friendId}/confirm", h.ConfirmFriendRequest).Methods(http.MethodPut)
	users.HandleFunc("/{id}/friends/{friendId}/status", h.GetFriendshipStatus).Methods(http.MethodGet)
	users.HandleFunc("/{id}/recommendations", h.GetRecommendations).Methods(http.MethodGet)

	directors := router.PathPrefix("/directors").Subrouter()
	directors.HandleFunc("", h.GetDirectors).Methods(http.MethodGet)
	directors.HandleFunc("", h.CreateDirector).Methods(http.MethodPost)
	directors.HandleFunc("", h.UpdateDirector).Methods(http.MethodPut)
	directors.HandleFunc("/{id}", h.GetDirectorByID).Methods(http.MethodGet)
	directors.HandleFunc("/{id}", h.DeleteDirector).Methods(http.MethodDelete)

	router.HandleFunc("/genres", h.GetGenres).Methods(http.MethodGet)
	router.HandleFunc("/genres/{id}", h.GetGenreByID).Methods(http.MethodGet)
	router.HandleFunc("/mpa", h.GetMpaRatings).Methods(http.MethodGet)
	router.HandleFunc("/mpa/{id}", h.GetMpaByID).Methods(http.MethodGet)

	return router
}
