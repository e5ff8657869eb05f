package clients

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"film-service/internal/domain"
	filmgrpc "film-service/internal/grpc"
	"film-service/internal/service"
	"film-service/internal/store"
	"film-service/internal/validation"

	gobreaker "github.com/sony/gobreaker/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startServer(t *testing.T) (*bufconn.Listener, *grpc.Server, *service.Services) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store.NewMemoryStore(logger), validation.New(), logger)
	lis := bufconn.Listen(1 << 20)
	srv := filmgrpc.NewGRPCServer(svc, logger)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return lis, srv, svc
}

func newTestClient(t *testing.T, lis *bufconn.Listener, cfg BreakerConfig) FilmServiceClient {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := NewFilmServiceGRPCClient("passthrough:///bufnet", cfg, logger,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	if err != nil {
		t.Fatalf("NewFilmServiceGRPCClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClientRoundTrip(t *testing.T) {
	lis, _, svc := startServer(t)
	ctx := context.Background()

	film, err := svc.Films.Create(ctx, &domain.Film{
		Name:        "Иваново детство",
		ReleaseDate: domain.NewDate(1962, time.April, 6),
		Duration:    95,
		Mpa:         &domain.MpaRating{ID: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	user, err := svc.Users.Create(ctx, &domain.User{Email: "ivan@example.com", Login: "ivan"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Likes.AddLike(ctx, film.ID, user.ID); err != nil {
		t.Fatal(err)
	}

	client := newTestClient(t, lis, DefaultBreakerConfig())

	exists, err := client.CheckFilmExists(ctx, film.ID)
	if err != nil || !exists {
		t.Fatalf("CheckFilmExists = %v, %v", exists, err)
	}
	exists, err = client.CheckUserExists(ctx, 500)
	if err != nil || exists {
		t.Fatalf("CheckUserExists(500) = %v, %v", exists, err)
	}

	info, err := client.GetFilmInfo(ctx, film.ID)
	if err != nil {
		t.Fatalf("GetFilmInfo: %v", err)
	}
	want := FilmInfo{ID: film.ID, Name: "Иваново детство", ReleaseDate: "1962-04-06", Duration: 95, Likes: 1, Mpa: "PG"}
	if *info != want {
		t.Errorf("GetFilmInfo = %+v, want %+v", *info, want)
	}

	popular, err := client.GetPopularFilms(ctx, 0)
	if err != nil || len(popular) != 1 {
		t.Fatalf("GetPopularFilms = %v, %v", popular, err)
	}

	recs, err := client.GetRecommendations(ctx, user.ID, 5)
	if err != nil {
		t.Fatalf("GetRecommendations: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("recommendations without neighbors = %v, want empty", recs)
	}

	_, err = client.GetFilmInfo(ctx, 404)
	if status.Code(errors.Unwrap(err)) != codes.NotFound {
		t.Errorf("GetFilmInfo(404) error = %v, want NotFound", err)
	}
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	lis, _, _ := startServer(t)
	cfg := DefaultBreakerConfig()
	cfg.Name = "client-errors"
	cfg.FailureThreshold = 2
	client := newTestClient(t, lis, cfg)

	for i := 0; i < 5; i++ {
		if _, err := client.GetFilmInfo(context.Background(), 1000); err == nil {
			t.Fatal("expected NotFound error")
		}
	}
	if _, err := client.GetPopularFilms(context.Background(), 1); err != nil {
		t.Fatalf("breaker opened on client errors: %v", err)
	}
}

func TestBreakerOpensWhenServerIsDown(t *testing.T) {
	lis, srv, _ := startServer(t)
	cfg := DefaultBreakerConfig()
	cfg.Name = "server-down"
	cfg.FailureThreshold = 2
	cfg.CallTimeout = 500 * time.Millisecond
	cfg.Timeout = time.Minute
	client := newTestClient(t, lis, cfg)

	srv.Stop()

	for i := 0; i < int(cfg.FailureThreshold); i++ {
		_, err := client.CheckFilmExists(context.Background(), 1)
		if err == nil {
			t.Fatal("expected failure from stopped server")
		}
		if errors.Is(err, gobreaker.ErrOpenState) {
			t.Fatalf("breaker opened too early on call %d", i+1)
		}
	}

	_, err := client.CheckFilmExists(context.Background(), 1)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("error = %v, want ErrOpenState", err)
	}
}
