package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"top250/auth"
	"top250/httpserver"
	"top250/movie"
	"top250/pkg/bcrypt"
	"top250/pkg/config"
	"top250/pkg/logger"
	"top250/pkg/sentry"
	"top250/poster"
	"top250/store"
	"top250/user"

	sentrygo "github.com/getsentry/sentry-go"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := sentry.Init(cfg.SentryDSN, cfg.AppEnv); err != nil {
		log.Fatalw("cannot init sentry", "error", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatalw("cannot open store", "driver", cfg.DB.Driver, "error", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Errorw("close store", "error", err)
		}
	}()

	posters, err := poster.NewStore(cfg.Upload.Dir, cfg.Upload.PublicBaseURL)
	if err != nil {
		log.Fatalw("cannot prepare upload dir", "dir", cfg.Upload.Dir, "error", err)
	}

	hasher := bcrypt.New(cfg.Auth.BcryptCost)
	server, err := httpserver.New(
		httpserver.WithConfig(cfg),
		httpserver.WithLogger(log),
		httpserver.WithMovieService(movie.NewUsecase(st.Movies, posters,
			movie.WithPageLimits(cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize))),
		httpserver.WithUserService(user.NewUsecase(st.Users, hasher)),
		httpserver.WithAuthService(auth.NewUsecase(st.Users, hasher)),
	)
	if err != nil {
		log.Fatalw("cannot create server", "error", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started", "addr", server.Addr, "driver", st.Driver())
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", "error", err)
		}
	case <-ctx.Done():
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorw("shutdown", "error", err)
		}
	}
}
