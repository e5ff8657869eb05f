package service

import (
	"context"
	"errors"
	"log/slog"

	"film-service/internal/domain"
	"film-service/internal/store"
)

// FriendshipService управляет направленными ребрами дружбы.
// Заявка u -> t создает ребро PENDING; подтверждение делает CONFIRMED оба направления.
type FriendshipService struct {
	users   store.UserStore
	friends store.FriendshipStore
	exists  existence
	logger  *slog.Logger
}

func NewFriendshipService(users store.UserStore, friends store.FriendshipStore, logger *slog.Logger) *FriendshipService {
	return &FriendshipService{
		users:   users,
		friends: friends,
		exists:  existence{users: users},
		logger:  logger,
	}
}

// SendFriendRequest создает ребро userID -> targetID со статусом PENDING.
func (s *FriendshipService) SendFriendRequest(ctx context.Context, userID, targetID int64) error {
	if err := s.requireUsers(ctx, userID, targetID); err != nil {
		return err
	}
	if userID == targetID {
		return invalid("Нельзя добавить в друзья самого себя")
	}

	edge := domain.Friendship{UserID: userID, FriendID: targetID, Status: domain.FriendshipPending}
	if err := s.friends.AddFriendship(ctx, edge); err != nil {
		if errors.Is(err, store.ErrFriendshipAlreadyExists) {
			s.logger.WarnContext(ctx, "Friend request already exists", slog.Int64("userID", userID), slog.Int64("targetID", targetID))
			return invalidState("Пользователь %d уже отправил заявку пользователю %d", userID, targetID)
		}
		return fromStore(err)
	}
	s.logger.InfoContext(ctx, "Friend request sent", slog.Int64("userID", userID), slog.Int64("targetID", targetID))
	return nil
}

// ConfirmFriendRequest подтверждает входящую заявку targetID -> userID.
func (s *FriendshipService) ConfirmFriendRequest(ctx context.Context, userID, targetID int64) error {
	if err := s.requireUsers(ctx, userID, targetID); err != nil {
		return err
	}

	incoming, err := s.friends.GetFriendship(ctx, targetID, userID)
	if err != nil && !errors.Is(err, store.ErrFriendshipNotFound) {
		return fromStore(err)
	}
	if incoming == nil || incoming.Status != domain.FriendshipPending {
		s.logger.WarnContext(ctx, "No pending friend request to confirm", slog.Int64("userID", userID), slog.Int64("targetID", targetID))
		return invalidState("Нет заявки в друзья от пользователя %d", targetID)
	}

	for _, edge := range []domain.Friendship{
		{UserID: targetID, FriendID: userID, Status: domain.FriendshipConfirmed},
		{UserID: userID, FriendID: targetID, Status: domain.FriendshipConfirmed},
	} {
		if err := s.friends.UpsertFriendship(ctx, edge); err != nil {
			return fromStore(err)
		}
	}
	s.logger.InfoContext(ctx, "Friend request confirmed", slog.Int64("userID", userID), slog.Int64("targetID", targetID))
	return nil
}

// RemoveFriend удаляет ребра в обе стороны. Отсутствие связи ошибкой не считается.
func (s *FriendshipService) RemoveFriend(ctx context.Context, userID, targetID int64) error {
	if err := s.requireUsers(ctx, userID, targetID); err != nil {
		return err
	}
	if err := s.friends.DeleteFriendship(ctx, userID, targetID); err != nil {
		return fromStore(err)
	}
	if err := s.friends.DeleteFriendship(ctx, targetID, userID); err != nil {
		return fromStore(err)
	}
	s.logger.InfoContext(ctx, "Friendship removed", slog.Int64("userID", userID), slog.Int64("targetID", targetID))
	return nil
}

// ListFriends возвращает пользователей, с которыми у userID подтвержденная дружба.
func (s *FriendshipService) ListFriends(ctx context.Context, userID int64) ([]*domain.User, error) {
	ids, err := s.confirmedFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.loadUsers(ctx, ids)
}

// ListPendingRequests возвращает авторов входящих неподтвержденных заявок.
func (s *FriendshipService) ListPendingRequests(ctx context.Context, userID int64) ([]*domain.User, error) {
	if err := s.exists.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	edges, err := s.friends.IncomingFriendships(ctx, userID)
	if err != nil {
		return nil, fromStore(err)
	}
	ids := make([]int64, 0, len(edges))
	for _, e := range edges {
		if e.Status == domain.FriendshipPending {
			ids = append(ids, e.UserID)
		}
	}
	return s.loadUsers(ctx, ids)
}

// CommonFriends пересечение списков друзей двух пользователей по id.
func (s *FriendshipService) CommonFriends(ctx context.Context, userID, otherID int64) ([]*domain.User, error) {
	mine, err := s.confirmedFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := s.confirmedFriendIDs(ctx, otherID)
	if err != nil {
		return nil, err
	}
	return s.loadUsers(ctx, intersect(mine, theirs))
}

// FriendshipStatus статус ребра userID -> targetID.
func (s *FriendshipService) FriendshipStatus(ctx context.Context, userID, targetID int64) (domain.FriendshipStatus, error) {
	if err := s.requireUsers(ctx, userID, targetID); err != nil {
		return "", err
	}
	edge, err := s.friends.GetFriendship(ctx, userID, targetID)
	if err != nil {
		if errors.Is(err, store.ErrFriendshipNotFound) {
			return "", notFound("Пользователи %d и %d не связаны", userID, targetID)
		}
		return "", fromStore(err)
	}
	return edge.Status, nil
}

func (s *FriendshipService) confirmedFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	if err := s.exists.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	edges, err := s.friends.OutgoingFriendships(ctx, userID)
	if err != nil {
		return nil, fromStore(err)
	}
	ids := make([]int64, 0, len(edges))
	for _, e := range edges {
		if e.Status == domain.FriendshipConfirmed {
			ids = append(ids, e.FriendID)
		}
	}
	return ids, nil
}

func (s *FriendshipService) requireUsers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if err := s.exists.requireUser(ctx, id); err != nil {
			s.logger.WarnContext(ctx, "User not found", slog.Int64("userID", id))
			return err
		}
	}
	return nil
}

func (s *FriendshipService) loadUsers(ctx context.Context, ids []int64) ([]*domain.User, error) {
	users, err := s.users.GetUsersByIDs(ctx, sortedUnique(ids))
	if err != nil {
		return nil, fromStore(err)
	}
	return users, nil
}
