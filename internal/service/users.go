package service

import (
	"context"
	"errors"
	"log/slog"

	"film-service/internal/domain"
	"film-service/internal/store"

	"github.com/go-playground/validator/v10"
)

// UserService создание, изменение и чтение пользователей.
type UserService struct {
	users    store.UserStore
	validate *validator.Validate
	logger   *slog.Logger
}

func NewUserService(users store.UserStore, v *validator.Validate, logger *slog.Logger) *UserService {
	return &UserService{users: users, validate: v, logger: logger}
}

// Create проверяет пользователя, подставляет логин вместо пустого имени и сохраняет.
func (s *UserService) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := validateStruct(s.validate, user); err != nil {
		s.logger.WarnContext(ctx, "User validation failed", slog.String("error", err.Error()))
		return nil, err
	}
	user.ApplyDefaultName()
	user.ID = 0
	if err := s.users.CreateUser(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create user", slog.String("error", err.Error()))
		return nil, fromStore(err)
	}
	s.logger.InfoContext(ctx, "User created", slog.Int64("userID", user.ID), slog.String("login", user.Login))
	created := *user
	return &created, nil
}

func (s *UserService) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := validateStruct(s.validate, user); err != nil {
		s.logger.WarnContext(ctx, "User validation failed", slog.Int64("userID", user.ID), slog.String("error", err.Error()))
		return nil, err
	}
	user.ApplyDefaultName()
	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.WarnContext(ctx, "User to update not found", slog.Int64("userID", user.ID))
			return nil, notFound("Пользователь с id %d не найден", user.ID)
		}
		return nil, fromStore(err)
	}
	s.logger.InfoContext(ctx, "User updated", slog.Int64("userID", user.ID))
	updated := *user
	return &updated, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.WarnContext(ctx, "User not found", slog.Int64("userID", id))
			return nil, notFound("Пользователь с id %d не найден", id)
		}
		return nil, fromStore(err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fromStore(err)
	}
	return users, nil
}

// Delete удаляет пользователя вместе с его лайками и дружбой.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return notFound("Пользователь с id %d не найден", id)
		}
		return fromStore(err)
	}
	s.logger.InfoContext(ctx, "User deleted", slog.Int64("userID", id))
	return nil
}
