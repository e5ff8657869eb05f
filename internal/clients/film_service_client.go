package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	filmgrpc "film-service/internal/grpc"
	"film-service/internal/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// FilmInfo краткая карточка фильма из ответа FilmInterService.
type FilmInfo struct {
	ID          int64
	Name        string
	ReleaseDate string
	Duration    int
	Likes       int
	Mpa         string
}

// FilmServiceClient определяет методы для взаимодействия с FilmInterService.
type FilmServiceClient interface {
	CheckFilmExists(ctx context.Context, filmID int64) (bool, error)
	CheckUserExists(ctx context.Context, userID int64) (bool, error)
	GetFilmInfo(ctx context.Context, filmID int64) (*FilmInfo, error)
	GetPopularFilms(ctx context.Context, count int) ([]FilmInfo, error)
	GetRecommendations(ctx context.Context, userID int64, limit int) ([]FilmInfo, error)
	Close() error
}

// BreakerConfig настройки circuit breaker клиента.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
	CallTimeout      time.Duration
}

// DefaultBreakerConfig значения по умолчанию.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "film-service",
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
		CallTimeout:      3 * time.Second,
	}
}

// filmServiceGRPCClient реализует FilmServiceClient с использованием gRPC.
type filmServiceGRPCClient struct {
	client      *filmgrpc.FilmInterServiceClient
	breaker     *gobreaker.CircuitBreaker[any]
	callTimeout time.Duration
	logger      *slog.Logger
	conn        *grpc.ClientConn
}

// NewFilmServiceGRPCClient создает клиент для FilmInterService по адресу addr (например, "localhost:9090").
func NewFilmServiceGRPCClient(addr string, cfg BreakerConfig, logger *slog.Logger, opts ...grpc.DialOption) (FilmServiceClient, error) {
	logger.Info("Creating FilmService gRPC client", slog.String("address", addr))

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		logger.Error("Failed to create FilmService gRPC client", slog.String("address", addr), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to connect to film service at %s: %w", addr, err)
	}
	return newFilmServiceClient(conn, cfg, logger), nil
}

func newFilmServiceClient(conn *grpc.ClientConn, cfg BreakerConfig, logger *slog.Logger) *filmServiceGRPCClient {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		// Ошибки клиента (NotFound, InvalidArgument ...) не говорят о недоступности сервиса.
		IsSuccessful: func(err error) bool {
			return err == nil || !isServerFault(err)
		},
	}
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(stateValue(gobreaker.StateClosed))

	return &filmServiceGRPCClient{
		client:      filmgrpc.NewFilmInterServiceClient(conn),
		breaker:     gobreaker.NewCircuitBreaker[any](settings),
		callTimeout: cfg.CallTimeout,
		logger:      logger,
		conn:        conn,
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func isServerFault(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Internal, codes.Unknown, codes.ResourceExhausted:
		return true
	}
	return false
}

// call выполняет вызов через circuit breaker с таймаутом на сам вызов.
func (c *filmServiceGRPCClient) call(ctx context.Context, method string, fn func(ctx context.Context) (any, error)) (any, error) {
	name := c.breaker.Name()
	res, err := c.breaker.Execute(func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
		return fn(callCtx)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
		c.logger.WarnContext(ctx, "FilmService call rejected by circuit breaker", slog.String("method", method), slog.String("state", c.breaker.State().String()))
		return nil, fmt.Errorf("grpc %s rejected: %w", method, err)
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
		st, _ := status.FromError(err)
		c.logger.ErrorContext(ctx, "FilmService gRPC call failed",
			slog.String("method", method),
			slog.String("code", st.Code().String()),
			slog.String("message", st.Message()))
		return nil, fmt.Errorf("grpc %s failed: %w", method, err)
	}
	metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
	c.logger.DebugContext(ctx, "FilmService gRPC call successful", slog.String("method", method))
	return res, nil
}

func (c *filmServiceGRPCClient) CheckFilmExists(ctx context.Context, filmID int64) (bool, error) {
	res, err := c.call(ctx, "CheckFilmExists", func(ctx context.Context) (any, error) {
		return c.client.CheckFilmExists(ctx, wrapperspb.Int64(filmID))
	})
	if err != nil {
		return false, err
	}
	return res.(*wrapperspb.BoolValue).GetValue(), nil
}

func (c *filmServiceGRPCClient) CheckUserExists(ctx context.Context, userID int64) (bool, error) {
	res, err := c.call(ctx, "CheckUserExists", func(ctx context.Context) (any, error) {
		return c.client.CheckUserExists(ctx, wrapperspb.Int64(userID))
	})
	if err != nil {
		return false, err
	}
	return res.(*wrapperspb.BoolValue).GetValue(), nil
}

func (c *filmServiceGRPCClient) GetFilmInfo(ctx context.Context, filmID int64) (*FilmInfo, error) {
	res, err := c.call(ctx, "GetFilmInfo", func(ctx context.Context) (any, error) {
		return c.client.GetFilmInfo(ctx, wrapperspb.Int64(filmID))
	})
	if err != nil {
		return nil, err
	}
	info := filmInfoFromStruct(res.(*structpb.Struct))
	return &info, nil
}

func (c *filmServiceGRPCClient) GetPopularFilms(ctx context.Context, count int) ([]FilmInfo, error) {
	res, err := c.call(ctx, "GetPopularFilms", func(ctx context.Context) (any, error) {
		return c.client.GetPopularFilms(ctx, wrapperspb.Int32(int32(count)))
	})
	if err != nil {
		return nil, err
	}
	return filmInfosFromList(res.(*structpb.ListValue)), nil
}

func (c *filmServiceGRPCClient) GetRecommendations(ctx context.Context, userID int64, limit int) ([]FilmInfo, error) {
	req, err := structpb.NewStruct(map[string]any{"userId": userID, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("build recommendations request: %w", err)
	}
	res, err := c.call(ctx, "GetRecommendations", func(ctx context.Context) (any, error) {
		return c.client.GetRecommendations(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return filmInfosFromList(res.(*structpb.ListValue)), nil
}

// Close закрывает gRPC соединение.
func (c *filmServiceGRPCClient) Close() error {
	if c.conn != nil {
		c.logger.Info("Closing gRPC connection to FilmService")
		return c.conn.Close()
	}
	return nil
}

func filmInfoFromStruct(s *structpb.Struct) FilmInfo {
	f := s.GetFields()
	return FilmInfo{
		ID:          int64(f["id"].GetNumberValue()),
		Name:        f["name"].GetStringValue(),
		ReleaseDate: f["releaseDate"].GetStringValue(),
		Duration:    int(f["duration"].GetNumberValue()),
		Likes:       int(f["likes"].GetNumberValue()),
		Mpa:         f["mpa"].GetStringValue(),
	}
}

func filmInfosFromList(l *structpb.ListValue) []FilmInfo {
	out := make([]FilmInfo, 0, len(l.GetValues()))
	for _, v := range l.GetValues() {
		out = append(out, filmInfoFromStruct(v.GetStructValue()))
	}
	return out
}
