// Package app wires configuration, storage, probing, the scheduler and the
// HTTP server together and runs them until the context is done.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/router-monitor/internal/adapter/probe"
	"github.com/vadimbarashkov/router-monitor/internal/adapter/repository/postgres"
	"github.com/vadimbarashkov/router-monitor/internal/config"
	"github.com/vadimbarashkov/router-monitor/internal/scheduler"
	"github.com/vadimbarashkov/router-monitor/internal/usecase"
	"github.com/vadimbarashkov/router-monitor/pkg/middleware/ratelimit"
	"golang.org/x/sync/errgroup"

	deliveryHTTP "github.com/vadimbarashkov/router-monitor/internal/adapter/delivery/http"
	pgconn "github.com/vadimbarashkov/router-monitor/pkg/postgres"
)

const shutdownTimeout = 30 * time.Second

// NewLogger builds the service logger from the log section of the config.
func NewLogger(cfg *config.Config) *httplog.Logger {
	return httplog.NewLogger("router-monitor", httplog.Options{
		LogLevel:        cfg.Log.SlogLevel(),
		JSON:            cfg.Log.JSON,
		Concise:         cfg.Log.Concise,
		RequestHeaders:  cfg.Env != config.EnvProd,
		TimeFieldFormat: time.RFC3339,
		Tags: map[string]string{
			"env": cfg.Env,
		},
	})
}

func Run(ctx context.Context, cfg *config.Config, logger *httplog.Logger) error {
	const op = "app.Run"

	db, err := pgconn.New(
		ctx,
		cfg.Postgres.DSN(),
		pgconn.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		pgconn.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		pgconn.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		pgconn.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
		pgconn.WithConnectRetry(cfg.Postgres.ConnectAttempts, cfg.Postgres.ConnectBackoff),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := pgconn.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	routerRepo := postgres.NewRouterRepository(db)
	likeRepo := postgres.NewLikeRepository(db)
	userRepo := postgres.NewUserRepository(db)

	probeClient := probe.NewClient(
		cfg.Probe.Timeout,
		probe.WithMethod(cfg.Probe.Method),
		probe.WithUserAgent(cfg.Probe.UserAgent),
		probe.WithMaxRedirects(cfg.Probe.MaxRedirects),
	)
	prober := probe.NewProber(probeClient, cfg.Probe.Concurrency)

	routerUseCase := usecase.NewRouterUseCase(routerRepo, prober, cfg.Probe.BatchTimeout)
	likeUseCase := usecase.NewLikeUseCase(likeRepo)
	userUseCase := usecase.NewUserUseCase(cfg.Invite.CodeLength, cfg.Invite.RewardPoints, userRepo)

	router := deliveryHTTP.NewRouter(
		logger,
		ratelimit.New(cfg.RateLimit.CheckEvery, cfg.RateLimit.Burst),
		routerUseCase,
		likeUseCase,
		userUseCase,
	)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        router,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(cfg.Scheduler.Spec, routerUseCase, likeUseCase, logger.Logger)
		if err != nil {
			return fmt.Errorf("%s: failed to create scheduler: %w", op, err)
		}

		sched.Start()
		logger.Info("scheduler started", slog.String("spec", cfg.Scheduler.Spec))

		g.Go(func() error {
			<-ctx.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := sched.Stop(stopCtx); err != nil {
				return fmt.Errorf("%s: failed to stop scheduler: %w", op, err)
			}

			return nil
		})
	}

	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", server.Addr), slog.String("env", cfg.Env))

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		logger.Info("http server stopped")

		return nil
	})

	return g.Wait()
}
