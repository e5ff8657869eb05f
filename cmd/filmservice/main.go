package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	httpAPI "film-service/internal/api"
	"film-service/internal/config"
	grpcServer "film-service/internal/grpc"
	"film-service/internal/service"
	"film-service/internal/store"
	"film-service/internal/validation"
)

// connectToDB инициализирует соединение с базой данных
func connectToDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sqlx.DB, error) {
	logger.Info("Attempting to connect to PostgreSQL", slog.String("dbURL_used", cfg.MaskedDatabaseURL()))

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		logger.Error("Failed to ping PostgreSQL database", slog.String("error", err.Error()))
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	logger.Info("Successfully connected to PostgreSQL database.")
	return db, nil
}

// openStore выбирает хранилище по конфигурации.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Info("Using in-memory storage")
		return store.NewMemoryStore(logger), nil
	}

	db, err := connectToDB(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	pg, err := store.NewPostgresStore(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		pg.Close()
		return nil, err
	}
	logger.Info("PostgreSQL store initialized.")
	return pg, nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("filmservice stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("Closing storage...")
		if err := st.Close(); err != nil {
			logger.Error("Failed to close storage", slog.String("error", err.Error()))
		}
	}()

	services := service.New(st, validation.New(), logger)

	// --- gRPC сервер ---
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC on port %s: %w", cfg.GRPCPort, err)
	}
	grpcSrv := grpcServer.NewGRPCServer(services, logger)

	// --- HTTP сервер ---
	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      httpAPI.NewRouter(httpAPI.NewHandler(services, logger)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("gRPC server starting", slog.String("port", cfg.GRPCPort))
		if err := grpcSrv.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("HTTP server starting", slog.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("filmservice shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
		} else {
			logger.Info("HTTP server gracefully stopped.")
		}

		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
			logger.Info("gRPC server gracefully stopped.")
		case <-shutdownCtx.Done():
			grpcSrv.Stop()
			logger.Warn("gRPC server forced to stop after timeout")
		}
		return nil
	})

	return g.Wait()
}
