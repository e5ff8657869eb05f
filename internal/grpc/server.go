package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"film-service/internal/domain"
	"film-service/internal/metrics"
	"film-service/internal/service"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server реализует FilmInterServiceServer поверх сервисного слоя.
type Server struct {
	svc    *service.Services
	logger *slog.Logger
}

// NewServer создает новый экземпляр gRPC сервера.
func NewServer(svc *service.Services, logger *slog.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

// toStatus переводит вид ошибки сервиса в код gRPC.
func toStatus(err error) error {
	msg := err.Error()
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		msg = svcErr.Message
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, msg)
	case errors.Is(err, service.ErrInvalidState):
		return status.Error(codes.FailedPrecondition, msg)
	case errors.Is(err, service.ErrValidation):
		return status.Error(codes.InvalidArgument, msg)
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// filmToStruct краткая карточка фильма для межсервисных ответов.
func filmToStruct(f *domain.Film) (*structpb.Struct, error) {
	fields := map[string]any{
		"id":          f.ID,
		"name":        f.Name,
		"releaseDate": f.ReleaseDate.String(),
		"duration":    f.Duration,
		"likes":       f.LikeCount(),
	}
	if f.Mpa != nil {
		fields["mpa"] = f.Mpa.Name
	}
	return structpb.NewStruct(fields)
}

func filmsToList(films []*domain.Film) (*structpb.ListValue, error) {
	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(films))}
	for _, f := range films {
		s, err := filmToStruct(f)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "failed to encode film %d: %v", f.ID, err)
		}
		out.Values = append(out.Values, structpb.NewStructValue(s))
	}
	return out, nil
}

// CheckFilmExists реализует gRPC метод CheckFilmExists.
func (s *Server) CheckFilmExists(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	id := req.GetValue()
	s.logger.InfoContext(ctx, "gRPC CheckFilmExists called", slog.Int64("film_id", id))
	if id <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "film id must be positive, got %d", id)
	}

	_, err := s.svc.Films.GetByID(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		s.logger.InfoContext(ctx, "Film does not exist (checked via gRPC)", slog.Int64("film_id", id))
		return wrapperspb.Bool(false), nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to check film existence", slog.Int64("film_id", id), slog.String("error", err.Error()))
		return nil, toStatus(err)
	}
	return wrapperspb.Bool(true), nil
}

// CheckUserExists реализует gRPC метод CheckUserExists.
func (s *Server) CheckUserExists(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	id := req.GetValue()
	s.logger.InfoContext(ctx, "gRPC CheckUserExists called", slog.Int64("user_id", id))
	if id <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "user id must be positive, got %d", id)
	}

	_, err := s.svc.Users.GetByID(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		return wrapperspb.Bool(false), nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to check user existence", slog.Int64("user_id", id), slog.String("error", err.Error()))
		return nil, toStatus(err)
	}
	return wrapperspb.Bool(true), nil
}

// GetFilmInfo реализует gRPC метод GetFilmInfo.
func (s *Server) GetFilmInfo(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	id := req.GetValue()
	s.logger.InfoContext(ctx, "gRPC GetFilmInfo called", slog.Int64("film_id", id))

	film, err := s.svc.Films.GetByID(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "GetFilmInfo failed", slog.Int64("film_id", id), slog.String("error", err.Error()))
		return nil, toStatus(err)
	}
	info, err := filmToStruct(film)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode film %d: %v", id, err)
	}
	return info, nil
}

// GetPopularFilms реализует gRPC метод GetPopularFilms. 0 означает значение по умолчанию.
func (s *Server) GetPopularFilms(ctx context.Context, req *wrapperspb.Int32Value) (*structpb.ListValue, error) {
	count := int(req.GetValue())
	if count == 0 {
		count = service.DefaultPopularCount
	}
	s.logger.InfoContext(ctx, "gRPC GetPopularFilms called", slog.Int("count", count))

	films, err := s.svc.Likes.PopularFilms(ctx, count)
	if err != nil {
		return nil, toStatus(err)
	}
	return filmsToList(films)
}

// GetRecommendations реализует gRPC метод GetRecommendations. Запрос: {userId, limit}.
func (s *Server) GetRecommendations(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	fields := req.GetFields()
	userID := int64(fields["userId"].GetNumberValue())
	limit := int(fields["limit"].GetNumberValue())
	if userID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "userId must be positive")
	}
	if limit == 0 {
		limit = service.DefaultRecommendationLimit
	}
	s.logger.InfoContext(ctx, "gRPC GetRecommendations called", slog.Int64("user_id", userID), slog.Int("limit", limit))

	films, err := s.svc.Recommendations.Recommendations(ctx, userID, limit)
	if err != nil {
		return nil, toStatus(err)
	}
	return filmsToList(films)
}

// UnaryInterceptor пишет лог и метрики на каждый вызов.
func UnaryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		elapsed := time.Since(start)
		metrics.ObserveGRPCRequest(info.FullMethod, code.String(), elapsed)
		logger.DebugContext(ctx, "gRPC call handled",
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("duration", elapsed))
		return resp, err
	}
}

// NewGRPCServer создает grpc.Server с интерцептором и зарегистрированным сервисом.
func NewGRPCServer(svc *service.Services, logger *slog.Logger) *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(UnaryInterceptor(logger)))
	RegisterFilmInterServiceServer(srv, NewServer(svc, logger))
	return srv
}
