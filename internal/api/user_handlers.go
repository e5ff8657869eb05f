package api

import (
	"net/http"

	"film-service/internal/domain"
	"film-service/internal/service"
)

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if !h.decodeJSON(w, r, &user) {
		return
	}
	created, err := h.svc.Users.Create(r.Context(), &user)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, created)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if !h.decodeJSON(w, r, &user) {
		return
	}
	updated, err := h.svc.Users.Update(r.Context(), &user)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, updated)
}

func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := h.svc.Users.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Users.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// userPair читает {id} и второй id пути.
func (h *Handler) userPair(w http.ResponseWriter, r *http.Request, other string) (int64, int64, bool) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return 0, 0, false
	}
	otherID, ok := h.pathID(w, r, other)
	if !ok {
		return 0, 0, false
	}
	return userID, otherID, true
}

// SendFriendRequest: PUT /users/{id}/friends/{friendId}
func (h *Handler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, friendID, ok := h.userPair(w, r, "friendId")
	if !ok {
		return
	}
	if err := h.svc.Friendships.SendFriendRequest(r.Context(), userID, friendID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ConfirmFriendRequest: PUT /users/{id}/friends/{friendId}/confirm
func (h *Handler) ConfirmFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, friendID, ok := h.userPair(w, r, "friendId")
	if !ok {
		return
	}
	if err := h.svc.Friendships.ConfirmFriendRequest(r.Context(), userID, friendID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, friendID, ok := h.userPair(w, r, "friendId")
	if !ok {
		return
	}
	if err := h.svc.Friendships.RemoveFriend(r.Context(), userID, friendID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	friends, err := h.svc.Friendships.ListFriends(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, friends)
}

func (h *Handler) GetFriendRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	requests, err := h.svc.Friendships.ListPendingRequests(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, requests)
}

func (h *Handler) GetCommonFriends(w http.ResponseWriter, r *http.Request) {
	userID, otherID, ok := h.userPair(w, r, "otherId")
	if !ok {
		return
	}
	friends, err := h.svc.Friendships.CommonFriends(r.Context(), userID, otherID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, friends)
}

// GetFriendshipStatus: GET /users/{id}/friends/{friendId}/status
func (h *Handler) GetFriendshipStatus(w http.ResponseWriter, r *http.Request) {
	userID, friendID, ok := h.userPair(w, r, "friendId")
	if !ok {
		return
	}
	status, err := h.svc.Friendships.FriendshipStatus(r.Context(), userID, friendID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, domain.Friendship{UserID: userID, FriendID: friendID, Status: status})
}

// GetRecommendations: /users/{id}/recommendations?limit=N
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	limit, ok := h.queryInt(w, r, "limit", service.DefaultRecommendationLimit)
	if !ok {
		return
	}
	if limit == 0 {
		limit = service.DefaultRecommendationLimit
	}
	films, err := h.svc.Recommendations.Recommendations(r.Context(), userID, limit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}
