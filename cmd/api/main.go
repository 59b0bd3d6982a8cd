package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/deskops/incident-desk/internal/api/http"
	"github.com/deskops/incident-desk/internal/api/http/handlers"
	"github.com/deskops/incident-desk/internal/auth"
	"github.com/deskops/incident-desk/internal/config"
	"github.com/deskops/incident-desk/internal/events"
	"github.com/deskops/incident-desk/internal/observability"
	"github.com/deskops/incident-desk/internal/persistence"
	"github.com/deskops/incident-desk/internal/service"
	"github.com/deskops/incident-desk/internal/worker"
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

	dependencies := map[string]handlers.Pinger{}
	backends := persistence.Backends{RedisKey: cfg.Redis.Key}

	if cfg.Storage.Backend == config.BackendPostgres {
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
		backends.Postgres = pg
		dependencies["postgres"] = pg
	}

	if cfg.Storage.Backend == config.BackendRedis {
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		backends.Redis = redis
		dependencies["redis"] = redis
	}

	store, err := persistence.OpenStore(cfg.Storage, backends)
	if err != nil {
		logger.Fatal("failed to open incident store", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(events.WithErrorHandler(observability.EventErrorHandler(logger, metrics)))
	metrics.RegisterEventHandlers(dispatcher)
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	incidentService := service.NewIncidentService(service.IncidentDependencies{Dispatcher: dispatcher})

	if store != nil {
		if err := incidentService.LoadFrom(ctx, store); err != nil {
			logger.Fatal("failed to load incidents", zap.Error(err), zap.String("backend", cfg.Storage.Backend))
		}
		logger.Info("incidents loaded",
			zap.String("backend", cfg.Storage.Backend),
			zap.Int("count", len(incidentService.ListAll())))
	}

	workerDone := make(chan struct{})
	if store != nil && cfg.Storage.AutoSave {
		snapshots := worker.NewSnapshotWorker(incidentService, store, logger)
		snapshots.Register(dispatcher)
		go func() {
			snapshots.Run(ctx)
			close(workerDone)
		}()
	} else {
		close(workerDone)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Metrics:        handlers.NewMetricsHandler(metrics),
		Incidents:      handlers.NewIncidentsHandler(incidentService, store, logger),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	cancel()
	<-workerDone
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
