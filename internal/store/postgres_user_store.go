package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"film-service/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const selectUsersQuery = `SELECT id, email, login, COALESCE(name, '') AS name, birthday FROM users`

func (s *PostgresStore) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, login, name, birthday) VALUES ($1, $2, $3, $4) RETURNING id`
	s.logger.DebugContext(ctx, "Executing Create user query", slog.String("login", user.Login))
	if err := s.db.GetContext(ctx, &user.ID, query, user.Email, user.Login, user.Name, user.Birthday); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create user in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.InfoContext(ctx, "User created successfully in DB", slog.Int64("userID", user.ID))
	return nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email = $1, login = $2, name = $3, birthday = $4 WHERE id = $5`
	s.logger.DebugContext(ctx, "Executing Update user query", slog.Int64("userID", user.ID))
	result, err := s.db.ExecContext(ctx, query, user.Email, user.Login, user.Name, user.Birthday, user.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update user in DB", slog.Int64("userID", user.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update user: %w", err)
	}
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No user found to update in DB", slog.Int64("userID", user.ID))
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := s.db.GetContext(ctx, &user, selectUsersQuery+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get user by ID from DB", slog.Int64("userID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) GetUsersByIDs(ctx context.Context, ids []int64) ([]*domain.User, error) {
	users := []*domain.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := s.db.SelectContext(ctx, &users, selectUsersQuery+` WHERE id = ANY($1) ORDER BY id`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}
	return users, nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users := []*domain.User{}
	if err := s.db.SelectContext(ctx, &users, selectUsersQuery+` ORDER BY id`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list users from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser удаляет пользователя вместе с его лайками и связями дружбы.
func (s *PostgresStore) DeleteUser(ctx context.Context, id int64) error {
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM friendships WHERE user_id = $1 OR friend_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1`, id); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		s.logger.ErrorContext(ctx, "Failed to delete user from DB", slog.Int64("userID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.InfoContext(ctx, "User deleted from DB", slog.Int64("userID", id))
	return nil
}

func (s *PostgresStore) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// --- Лайки ---

func (s *PostgresStore) AddLike(ctx context.Context, filmID, userID int64) error {
	s.logger.DebugContext(ctx, "Executing AddLike query", slog.Int64("filmID", filmID), slog.Int64("userID", userID))
	if _, err := s.db.ExecContext(ctx, `INSERT INTO likes (film_id, user_id) VALUES ($1, $2)`, filmID, userID); err != nil {
		if mapped := translatePQError(err, ErrLikeAlreadyExists); mapped != nil {
			s.logger.WarnContext(ctx, "Like rejected by constraint", slog.String("error", err.Error()))
			return mapped
		}
		s.logger.ErrorContext(ctx, "Failed to add like in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM likes WHERE film_id = $1 AND user_id = $2`, filmID, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to remove like in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

func (s *PostgresStore) FilmLikers(ctx context.Context, filmID int64) ([]int64, error) {
	userIDs := []int64{}
	if err := s.db.SelectContext(ctx, &userIDs, `SELECT user_id FROM likes WHERE film_id = $1 ORDER BY user_id`, filmID); err != nil {
		return nil, fmt.Errorf("failed to get film likers: %w", err)
	}
	return userIDs, nil
}

func (s *PostgresStore) UserLikes(ctx context.Context, userID int64) ([]int64, error) {
	filmIDs := []int64{}
	if err := s.db.SelectContext(ctx, &filmIDs, `SELECT film_id FROM likes WHERE user_id = $1 ORDER BY film_id`, userID); err != nil {
		return nil, fmt.Errorf("failed to get user likes: %w", err)
	}
	return filmIDs, nil
}

func (s *PostgresStore) LikeCounts(ctx context.Context) (map[int64]int, error) {
	var rows []struct {
		FilmID int64 `db:"film_id"`
		Count  int   `db:"count"`
	}
	if err := s.db.SelectContext(ctx, &rows, `SELECT film_id, COUNT(*) AS count FROM likes GROUP BY film_id`); err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	counts := make(map[int64]int, len(rows))
	for _, r := range rows {
		counts[r.FilmID] = r.Count
	}
	return counts, nil
}

// --- Дружба ---

func (s *PostgresStore) AddFriendship(ctx context.Context, f domain.Friendship) error {
	query := `INSERT INTO friendships (user_id, friend_id, status) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, f.UserID, f.FriendID, f.Status); err != nil {
		if mapped := translatePQError(err, ErrFriendshipAlreadyExists); mapped != nil {
			return mapped
		}
		s.logger.ErrorContext(ctx, "Failed to add friendship in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to add friendship: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpsertFriendship(ctx context.Context, f domain.Friendship) error {
	query := `INSERT INTO friendships (user_id, friend_id, status) VALUES ($1, $2, $3)
              ON CONFLICT (user_id, friend_id) DO UPDATE SET status = EXCLUDED.status`
	if _, err := s.db.ExecContext(ctx, query, f.UserID, f.FriendID, f.Status); err != nil {
		if mapped := translatePQError(err, nil); mapped != nil {
			return mapped
		}
		s.logger.ErrorContext(ctx, "Failed to upsert friendship in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to upsert friendship: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetFriendship(ctx context.Context, userID, friendID int64) (*domain.Friendship, error) {
	var f domain.Friendship
	query := `SELECT user_id, friend_id, status FROM friendships WHERE user_id = $1 AND friend_id = $2`
	if err := s.db.GetContext(ctx, &f, query, userID, friendID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFriendshipNotFound
		}
		return nil, fmt.Errorf("failed to get friendship: %w", err)
	}
	return &f, nil
}

func (s *PostgresStore) DeleteFriendship(ctx context.Context, userID, friendID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM friendships WHERE user_id = $1 AND friend_id = $2`, userID, friendID); err != nil {
		return fmt.Errorf("failed to delete friendship: %w", err)
	}
	return nil
}

func (s *PostgresStore) OutgoingFriendships(ctx context.Context, userID int64) ([]domain.Friendship, error) {
	edges := []domain.Friendship{}
	query := `SELECT user_id, friend_id, status FROM friendships WHERE user_id = $1 ORDER BY friend_id`
	if err := s.db.SelectContext(ctx, &edges, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list outgoing friendships: %w", err)
	}
	return edges, nil
}

func (s *PostgresStore) IncomingFriendships(ctx context.Context, userID int64) ([]domain.Friendship, error) {
	edges := []domain.Friendship{}
	query := `SELECT user_id, friend_id, status FROM friendships WHERE friend_id = $1 ORDER BY user_id`
	if err := s.db.SelectContext(ctx, &edges, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list incoming friendships: %w", err)
	}
	return edges, nil
}
