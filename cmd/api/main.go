package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/job-board/internal/api/http"
	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/observability"
	"github.com/spec-kit/job-board/internal/persistence"
	"github.com/spec-kit/job-board/internal/repository"
	"github.com/spec-kit/job-board/internal/repository/memstore"
	"github.com/spec-kit/job-board/internal/service"
	"github.com/spec-kit/job-board/internal/validator"
	"github.com/spec-kit/job-board/internal/worker"
)

// stores groups the repository implementations selected at boot.
type stores struct {
	kind         string
	users        repository.UserRepository
	admins       repository.AdminRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	tx           repository.Transactor
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
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

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := selectStores(pg, logger)
	dependencies := map[string]handlers.Pinger{"redis": redis}
	if pg.Enabled() {
		dependencies["postgres"] = pg
	}

	dispatcher := events.NewInMemoryDispatcher()
	var channel events.ChannelPublisher
	if err := redis.Ping(ctx); err == nil {
		channel = redis
	} else {
		logger.Warn("redis unavailable; events stay in-process", zap.Error(err))
	}
	worker.StartNotificationWorker(dispatcher, logger, *cfg, channel)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:  repos.users,
		AdminRepo: repos.admins,
		Logger:    logger,
	})
	jobService := service.NewJobService(*cfg, service.JobDependencies{
		JobRepo:         repos.jobs,
		ApplicationRepo: repos.applications,
		Transactor:      repos.tx,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		JobRepo:         repos.jobs,
		ApplicationRepo: repos.applications,
		UserRepo:        repos.users,
		Transactor:      repos.tx,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.users, repos.admins)

	metrics := observability.NewMetrics()
	v := validator.New()

	app := httptransport.NewApp(*cfg, logger)
	httptransport.RegisterMiddlewares(app, *cfg, logger, metrics)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, repos.kind, dependencies, metrics),
		Jobs:           handlers.NewJobsHandler(jobService, v),
		Applications:   handlers.NewApplicationsHandler(applicationService, v),
		Admins:         handlers.NewAdminsHandler(authService, v),
		Users:          handlers.NewUsersHandler(authService, v),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.App.Addr()), zap.String("storage", repos.kind))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

// selectStores uses Postgres when a pool is available and the in-memory store otherwise.
func selectStores(pg *persistence.Postgres, logger *zap.Logger) stores {
	if pg.Enabled() {
		pool := pg.PoolHandle()
		return stores{
			kind:         "postgres",
			users:        repository.NewUserRepository(pool),
			admins:       repository.NewAdminRepository(pool),
			jobs:         repository.NewJobRepository(pool),
			applications: repository.NewApplicationRepository(pool),
			tx:           repository.NewTransactor(pool),
		}
	}
	logger.Warn("using in-memory record store; data is lost on restart")
	mem := memstore.New()
	return stores{
		kind:         "memory",
		users:        mem.Users(),
		admins:       mem.Admins(),
		jobs:         mem.Jobs(),
		applications: mem.Applications(),
		tx:           mem,
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
