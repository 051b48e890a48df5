package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/enterprize-service/internal/api/http"
	"github.com/spec-kit/enterprize-service/internal/api/http/handlers"
	"github.com/spec-kit/enterprize-service/internal/auth"
	"github.com/spec-kit/enterprize-service/internal/config"
	"github.com/spec-kit/enterprize-service/internal/events"
	"github.com/spec-kit/enterprize-service/internal/observability"
	"github.com/spec-kit/enterprize-service/internal/persistence"
	"github.com/spec-kit/enterprize-service/internal/repository"
	"github.com/spec-kit/enterprize-service/internal/service"
	"github.com/spec-kit/enterprize-service/internal/storage"
	"github.com/spec-kit/enterprize-service/internal/worker"
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

	photoStore, err := storage.NewGCSPhotoStore(ctx, cfg.Storage.PhotoBucket)
	if err != nil {
		logger.Fatal("failed to init photo storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	enterprizeRepo := repository.NewEnterprizeRepository(pool)
	profileRepo := repository.NewProfileRepository(pool, photoStore)
	postRepo := repository.NewPostRepository(pool)
	eventRepo := repository.NewEventRepository(pool)

	notificationService := service.NewNotificationService(logger, cfg.Notification)
	dispatcher := events.NewDispatcher(
		worker.NotificationRegistry(notificationService), logger, cfg.Dispatcher.Debug)

	enterprizeService := service.NewEnterprizeService(enterprizeRepo)
	registrationService := service.NewRegistrationService(*cfg, service.RegistrationDependencies{
		EnterprizeRepo: enterprizeRepo,
		ProfileRepo:    profileRepo,
		Dispatcher:     dispatcher,
	})
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		ProfileRepo: profileRepo,
		Dispatcher:  dispatcher,
	})
	profileService := service.NewProfileService(service.ProfileDependencies{
		ProfileRepo: profileRepo,
		Dispatcher:  dispatcher,
	})
	postService := service.NewPostService(postRepo)
	eventService := service.NewEventService(eventRepo)

	authMiddleware := auth.NewMiddleware(authService.Tokens(), profileRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Enterprizes:    handlers.NewEnterprizesHandler(enterprizeService),
		Registration:   handlers.NewRegistrationHandler(registrationService),
		Auth:           handlers.NewAuthHandler(authService, profileService),
		Profiles:       handlers.NewProfilesHandler(profileService),
		Posts:          handlers.NewPostsHandler(postService),
		Events:         handlers.NewEventsHandler(eventService),
		AuthMiddleware: authMiddleware,
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
