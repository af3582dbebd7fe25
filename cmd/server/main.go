package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/helpdesk-labs/ticketera/internal/config"
	"github.com/helpdesk-labs/ticketera/internal/observability"
	"github.com/helpdesk-labs/ticketera/internal/persistence"
	"github.com/helpdesk-labs/ticketera/internal/repository"
	"github.com/helpdesk-labs/ticketera/internal/service"
	"github.com/helpdesk-labs/ticketera/internal/session"
	"github.com/helpdesk-labs/ticketera/internal/web"
	"github.com/helpdesk-labs/ticketera/internal/web/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	sessions := session.NewManager(cfg.Session, session.NewStorage(cfg.Session, redis.Client))
	metrics := observability.NewMetrics()

	app := web.New(web.Dependencies{
		Logger:         logger,
		Metrics:        metrics,
		Sessions:       sessions,
		Users:          userRepo,
		Tickets:        service.NewTicketService(ticketRepo),
		Auth:           service.NewAuthService(cfg.Auth, userRepo),
		Health:         handlers.NewHealthHandler(cfg.App.Name, pg, redis),
		RequestTimeout: cfg.App.RequestTimeout(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
