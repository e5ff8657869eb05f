package api

import (
	"log/slog"
	"net/http"

	"film-service/internal/domain"
	"film-service/internal/service"
)

// GetFilms возвращает все фильмы.
func (h *Handler) GetFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.svc.Films.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}

// CreateFilm обрабатывает запрос на создание нового фильма.
func (h *Handler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "HTTP CreateFilm request received", slog.String("path", r.URL.Path))

	var film domain.Film
	if !h.decodeJSON(w, r, &film) {
		return
	}
	created, err := h.svc.Films.Create(ctx, &film)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, created)
}

// UpdateFilm полностью заменяет фильм; id берется из тела запроса.
func (h *Handler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	var film domain.Film
	if !h.decodeJSON(w, r, &film) {
		return
	}
	updated, err := h.svc.Films.Update(r.Context(), &film)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) GetFilmByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	film, err := h.svc.Films.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, film)
}

func (h *Handler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Films.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	if err := h.svc.Likes.AddLike(r.Context(), filmID, userID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	if err := h.svc.Likes.RemoveLike(r.Context(), filmID, userID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetLikeCount(w http.ResponseWriter, r *http.Request) {
	filmID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	count, err := h.svc.Likes.LikeCount(r.Context(), filmID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, map[string]int{"count": count})
}

// GetPopularFilms: /films/popular?count=N; пустой или нулевой count дает 10.
func (h *Handler) GetPopularFilms(w http.ResponseWriter, r *http.Request) {
	count, ok := h.queryInt(w, r, "count", service.DefaultPopularCount)
	if !ok {
		return
	}
	if count == 0 {
		count = service.DefaultPopularCount
	}
	films, err := h.svc.Likes.PopularFilms(r.Context(), count)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}

// GetCommonFilms: /films/common?userId=&friendId=
func (h *Handler) GetCommonFilms(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.queryID(w, r, "userId")
	if !ok {
		return
	}
	friendID, ok := h.queryID(w, r, "friendId")
	if !ok {
		return
	}
	films, err := h.svc.Likes.CommonLikedFilms(r.Context(), userID, friendID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}

// SearchFilms: /films/search?query=...&by=title,director
func (h *Handler) SearchFilms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	films, err := h.svc.Search.SearchFilms(r.Context(), q.Get("query"), q.Get("by"))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}
