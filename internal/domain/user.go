package domain

import "strings"

// FriendshipStatus статус направленной связи дружбы.
type FriendshipStatus string

const (
	FriendshipPending   FriendshipStatus = "PENDING"
	FriendshipConfirmed FriendshipStatus = "CONFIRMED"
)

// User представляет модель пользователя.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Email    string `json:"email" db:"email" validate:"notblank,max=255,email"`
	Login    string `json:"login" db:"login" validate:"notblank,max=100,nowhitespace"`
	Name     string `json:"name" db:"name" validate:"max=255"`
	Birthday Date   `json:"birthday" db:"birthday" validate:"omitempty,notfuture"`
}

// ApplyDefaultName подставляет логин вместо пустого имени.
func (u *User) ApplyDefaultName() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

// Friendship направленное ребро user -> friend.
type Friendship struct {
	UserID   int64            `json:"userId" db:"user_id"`
	FriendID int64            `json:"friendId" db:"friend_id"`
	Status   FriendshipStatus `json:"status" db:"status"`
}
