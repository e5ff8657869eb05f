package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"film-service/internal/domain"
	"film-service/internal/store"
	"film-service/internal/validation"
)

type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *store.MemoryStore
	svc   *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemoryStore(logger)
	return &fixture{
		t:     t,
		ctx:   context.Background(),
		store: st,
		svc:   New(st, validation.New(), logger),
	}
}

func (f *fixture) film(name string, directors ...int64) *domain.Film {
	f.t.Helper()
	film := &domain.Film{
		Name:        name,
		Description: "description",
		ReleaseDate: domain.NewDate(2000, time.January, 1),
		Duration:    100,
	}
	for _, id := range directors {
		film.Directors = append(film.Directors, domain.Director{ID: id})
	}
	created, err := f.svc.Films.Create(f.ctx, film)
	if err != nil {
		f.t.Fatalf("Films.Create(%q) error = %v", name, err)
	}
	return created
}

func (f *fixture) user(login string) *domain.User {
	f.t.Helper()
	created, err := f.svc.Users.Create(f.ctx, &domain.User{Email: login + "@example.com", Login: login})
	if err != nil {
		f.t.Fatalf("Users.Create(%q) error = %v", login, err)
	}
	return created
}

func (f *fixture) director(name string) *domain.Director {
	f.t.Helper()
	created, err := f.svc.Directors.Create(f.ctx, &domain.Director{Name: name})
	if err != nil {
		f.t.Fatalf("Directors.Create(%q) error = %v", name, err)
	}
	return created
}

func (f *fixture) like(film *domain.Film, users ...*domain.User) {
	f.t.Helper()
	for _, u := range users {
		if err := f.svc.Likes.AddLike(f.ctx, film.ID, u.ID); err != nil {
			f.t.Fatalf("AddLike(%d, %d) error = %v", film.ID, u.ID, err)
		}
	}
}

func (f *fixture) befriend(a, b *domain.User) {
	f.t.Helper()
	if err := f.svc.Friendships.SendFriendRequest(f.ctx, a.ID, b.ID); err != nil {
		f.t.Fatalf("SendFriendRequest(%d, %d) error = %v", a.ID, b.ID, err)
	}
	if err := f.svc.Friendships.ConfirmFriendRequest(f.ctx, b.ID, a.ID); err != nil {
		f.t.Fatalf("ConfirmFriendRequest(%d, %d) error = %v", b.ID, a.ID, err)
	}
}

func assertKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("error = %v, want kind %v", err, kind)
	}
}

func filmIDs(films []*domain.Film) []int64 {
	ids := make([]int64, 0, len(films))
	for _, f := range films {
		ids = append(ids, f.ID)
	}
	return ids
}

func userIDs(users []*domain.User) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}
