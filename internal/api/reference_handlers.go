package api

import (
	"net/http"

	"film-service/internal/domain"
)

func (h *Handler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.svc.Reference.Genres(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, genres)
}

func (h *Handler) GetGenreByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	genre, err := h.svc.Reference.GenreByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, genre)
}

func (h *Handler) GetMpaRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.svc.Reference.MpaRatings(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, ratings)
}

func (h *Handler) GetMpaByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	mpa, err := h.svc.Reference.MpaByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, mpa)
}

func (h *Handler) GetDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := h.svc.Directors.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, directors)
}

func (h *Handler) GetDirectorByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	director, err := h.svc.Directors.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, director)
}

func (h *Handler) CreateDirector(w http.ResponseWriter, r *http.Request) {
	var director domain.Director
	if !h.decodeJSON(w, r, &director) {
		return
	}
	created, err := h.svc.Directors.Create(r.Context(), &director)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, created)
}

func (h *Handler) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	var director domain.Director
	if !h.decodeJSON(w, r, &director) {
		return
	}
	updated, err := h.svc.Directors.Update(r.Context(), &director)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Directors.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
