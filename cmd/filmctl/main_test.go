package main

import (
	"context"
	"io"
	"testing"

	"film-service/internal/clients"
)

type fakeClient struct {
	clients.FilmServiceClient
	gotUser  int64
	gotLimit int
}

func (f *fakeClient) GetRecommendations(_ context.Context, userID int64, limit int) ([]clients.FilmInfo, error) {
	f.gotUser, f.gotLimit = userID, limit
	return []clients.FilmInfo{{ID: 7}}, nil
}

func (f *fakeClient) GetPopularFilms(_ context.Context, count int) ([]clients.FilmInfo, error) {
	f.gotLimit = count
	return nil, nil
}

func (f *fakeClient) CheckUserExists(context.Context, int64) (bool, error) { return true, nil }

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cmd     string
		args    []string
		wantErr bool
	}{
		{"recommend", "recommend", []string{"-user", "3", "-limit", "2"}, false},
		{"recommend without user", "recommend", nil, true},
		{"popular", "popular", []string{"-n", "5"}, false},
		{"film without id", "film", nil, true},
		{"exists user", "exists", []string{"-user", "1"}, false},
		{"exists nothing", "exists", nil, true},
		{"unknown", "rate", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dispatch(ctx, &fakeClient{}, tt.cmd, tt.args, io.Discard)
			if (err != nil) != tt.wantErr {
				t.Errorf("dispatch(%s %v) error = %v, wantErr %v", tt.cmd, tt.args, err, tt.wantErr)
			}
		})
	}

	fc := &fakeClient{}
	if _, err := dispatch(ctx, fc, "recommend", []string{"-user", "3", "-limit", "2"}, io.Discard); err != nil {
		t.Fatal(err)
	}
	if fc.gotUser != 3 || fc.gotLimit != 2 {
		t.Errorf("GetRecommendations called with (%d, %d), want (3, 2)", fc.gotUser, fc.gotLimit)
	}
}
