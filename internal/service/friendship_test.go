package service

import (
	"slices"
	"testing"

	"film-service/internal/domain"
)

func TestFriendshipLifecycle(t *testing.T) {
	f := newFixture(t)
	a, b := f.user("a"), f.user("b")
	svc := f.svc.Friendships

	if err := svc.SendFriendRequest(f.ctx, a.ID, b.ID); err != nil {
		t.Fatalf("SendFriendRequest() error = %v", err)
	}
	assertKind(t, svc.SendFriendRequest(f.ctx, a.ID, b.ID), ErrInvalidState)

	pending, _ := svc.ListPendingRequests(f.ctx, b.ID)
	if !slices.Equal(userIDs(pending), []int64{a.ID}) {
		t.Errorf("ListPendingRequests(b) = %v, want [a]", userIDs(pending))
	}
	if friends, _ := svc.ListFriends(f.ctx, a.ID); len(friends) != 0 {
		t.Errorf("pending request already counted as friendship: %v", userIDs(friends))
	}

	if err := svc.ConfirmFriendRequest(f.ctx, b.ID, a.ID); err != nil {
		t.Fatalf("ConfirmFriendRequest() error = %v", err)
	}
	for _, pair := range [][2]*domain.User{{a, b}, {b, a}} {
		status, err := svc.FriendshipStatus(f.ctx, pair[0].ID, pair[1].ID)
		if err != nil || status != domain.FriendshipConfirmed {
			t.Errorf("FriendshipStatus(%d, %d) = %q, %v; want CONFIRMED", pair[0].ID, pair[1].ID, status, err)
		}
	}
	if pending, _ := svc.ListPendingRequests(f.ctx, b.ID); len(pending) != 0 {
		t.Errorf("pending after confirm = %v", userIDs(pending))
	}

	if err := svc.RemoveFriend(f.ctx, a.ID, b.ID); err != nil {
		t.Fatalf("RemoveFriend() error = %v", err)
	}
	for _, u := range []*domain.User{a, b} {
		if friends, _ := svc.ListFriends(f.ctx, u.ID); len(friends) != 0 {
			t.Errorf("ListFriends(%d) after removal = %v", u.ID, userIDs(friends))
		}
	}
	if err := svc.RemoveFriend(f.ctx, a.ID, b.ID); err != nil {
		t.Errorf("RemoveFriend() without edges error = %v, want nil", err)
	}
}

func TestConfirmWithoutPendingRequest(t *testing.T) {
	f := newFixture(t)
	a, b := f.user("a"), f.user("b")
	svc := f.svc.Friendships

	assertKind(t, svc.ConfirmFriendRequest(f.ctx, b.ID, a.ID), ErrInvalidState)

	// заявка в обратную сторону не дает права подтвердить
	if err := svc.SendFriendRequest(f.ctx, b.ID, a.ID); err != nil {
		t.Fatalf("SendFriendRequest() error = %v", err)
	}
	assertKind(t, svc.ConfirmFriendRequest(f.ctx, b.ID, a.ID), ErrInvalidState)

	// повторное подтверждение уже подтвержденной дружбы
	if err := svc.ConfirmFriendRequest(f.ctx, a.ID, b.ID); err != nil {
		t.Fatalf("ConfirmFriendRequest() error = %v", err)
	}
	assertKind(t, svc.ConfirmFriendRequest(f.ctx, a.ID, b.ID), ErrInvalidState)
}

func TestFriendRequestErrors(t *testing.T) {
	f := newFixture(t)
	a := f.user("a")
	svc := f.svc.Friendships

	assertKind(t, svc.SendFriendRequest(f.ctx, a.ID, a.ID), ErrValidation)
	assertKind(t, svc.SendFriendRequest(f.ctx, a.ID, 404), ErrNotFound)
	assertKind(t, svc.SendFriendRequest(f.ctx, 404, a.ID), ErrNotFound)
	assertKind(t, svc.RemoveFriend(f.ctx, a.ID, 404), ErrNotFound)
	_, err := svc.ListFriends(f.ctx, 404)
	assertKind(t, err, ErrNotFound)
	_, err = svc.FriendshipStatus(f.ctx, a.ID, a.ID)
	assertKind(t, err, ErrNotFound)
}

func TestCommonFriendsIsSymmetric(t *testing.T) {
	f := newFixture(t)
	a, b, c, d, e := f.user("a"), f.user("b"), f.user("c"), f.user("d"), f.user("e")
	f.befriend(a, c)
	f.befriend(a, d)
	f.befriend(b, d)
	f.befriend(b, c)
	f.befriend(a, e)
	// неподтвержденная заявка не считается дружбой
	if err := f.svc.Friendships.SendFriendRequest(f.ctx, b.ID, e.ID); err != nil {
		t.Fatalf("SendFriendRequest() error = %v", err)
	}

	ab, err := f.svc.Friendships.CommonFriends(f.ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("CommonFriends(a, b) error = %v", err)
	}
	ba, err := f.svc.Friendships.CommonFriends(f.ctx, b.ID, a.ID)
	if err != nil {
		t.Fatalf("CommonFriends(b, a) error = %v", err)
	}
	want := []int64{c.ID, d.ID}
	if !slices.Equal(userIDs(ab), want) || !slices.Equal(userIDs(ba), want) {
		t.Errorf("CommonFriends = %v / %v, want %v", userIDs(ab), userIDs(ba), want)
	}
}
