package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/marketplace-service/internal/api/http"
	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/mail"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/persistence"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
	"github.com/spec-kit/marketplace-service/internal/worker"
)

const mailWorkerCount = 2

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
	userRepo := repository.NewUserRepository(pool, cfg.Auth.BcryptCost)
	registrationRepo := repository.NewRegistrationRepository(pool, cfg.Auth.BcryptCost)
	customerRepo := repository.NewCustomerRepository(pool)
	businessRepo := repository.NewBusinessRepository(pool)
	serviceTypeRepo := repository.NewServiceTypeRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	mailer := mail.NewSMTPMailer(cfg.Mail)
	mailWorker := worker.NewNotificationWorker(mailer, logger)
	mailWorker.Start(ctx, mailWorkerCount)

	notifications := service.NewNotificationService(dispatcher, mailWorker, logger, cfg.Mail)
	notifications.RegisterHandlers()

	accountService := service.NewAccountService(cfg.Auth, service.AccountDependencies{
		UserRepo:         userRepo,
		RegistrationRepo: registrationRepo,
		TokenManager:     auth.NewTokenManager(cfg.Auth),
		Revoker:          auth.NewRedisRevoker(redis.Client),
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	profileService := service.NewProfileService(customerRepo, businessRepo)
	businessService := service.NewBusinessService(businessRepo, serviceTypeRepo)
	catalogService := service.NewCatalogService(serviceTypeRepo)
	adminService := service.NewAdminService(userRepo, profileService)

	authMiddleware := auth.NewAuthMiddleware(accountService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(accountService, cfg.App.IsProduction()),
		Users:          handlers.NewUsersHandler(profileService),
		Businesses:     handlers.NewBusinessesHandler(businessService, catalogService),
		Admin:          handlers.NewAdminHandler(adminService, catalogService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	mailWorker.Stop()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
