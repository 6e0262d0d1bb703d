package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/wiet32522/LSCgambling/internal/api"
	"github.com/wiet32522/LSCgambling/internal/broadcast"
	"github.com/wiet32522/LSCgambling/internal/infra/logging"
	"github.com/wiet32522/LSCgambling/internal/infra/pgutils"
	pgaccounts "github.com/wiet32522/LSCgambling/internal/repos/accounts/postgres"
	"github.com/wiet32522/LSCgambling/internal/services/auth"
	"github.com/wiet32522/LSCgambling/internal/services/chat"
	"github.com/wiet32522/LSCgambling/internal/services/rain"
	"github.com/wiet32522/LSCgambling/internal/services/wagering"
	"github.com/wiet32522/LSCgambling/pkg/envconf"
	"github.com/wiet32522/LSCgambling/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	dbConns, err := pgutils.OpenDB(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	broadcaster, err := broadcast.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return fmt.Errorf("connect broadcaster: %w", err)
	}

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("Close broadcaster")

		return broadcaster.Close()
	})

	// --- Services ---
	engine := wagering.New(dbConns)
	authSrv := auth.New(dbConns)
	accountsRepo := pgaccounts.New(dbConns)
	chatRelay := chat.New(dbConns, broadcaster)
	rainJob := rain.New(dbConns, broadcaster, cfg.RainActiveWindow)
	channelAuth := broadcast.NewChannelAuthorizer(cfg.BroadcastKey, cfg.BroadcastSecret)

	go rain.NewRunner(rainJob, cfg.RainPool, cfg.RainInterval).Run(ctx)

	// --- HTTP server ---
	handler := api.NewHandler(engine, authSrv, accountsRepo, chatRelay, rainJob, cfg.RainPool, channelAuth, broadcaster)
	srv := api.NewServer(cfg.Port, handler)

	// Register HTTP server graceful shutdown
	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started")

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
