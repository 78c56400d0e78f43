package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/nutrisense/internal/api/http"
	"github.com/spec-kit/nutrisense/internal/api/http/handlers"
	"github.com/spec-kit/nutrisense/internal/auth"
	"github.com/spec-kit/nutrisense/internal/config"
	"github.com/spec-kit/nutrisense/internal/events"
	"github.com/spec-kit/nutrisense/internal/observability"
	"github.com/spec-kit/nutrisense/internal/persistence"
	"github.com/spec-kit/nutrisense/internal/repository"
	"github.com/spec-kit/nutrisense/internal/repository/memrepo"
	"github.com/spec-kit/nutrisense/internal/scoring"
	"github.com/spec-kit/nutrisense/internal/service"
	"github.com/spec-kit/nutrisense/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.JWTSecret == config.DevJWTSecret {
		logger.Warn("using development JWT secret; set AUTH_JWT_SECRET")
	}

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

	dependencies := map[string]handlers.Pinger{}
	if pg.Enabled() {
		dependencies["postgres"] = pg
	}

	var (
		userRepo       repository.UserRepository
		predictionRepo repository.PredictionHistoryRepository
		wellnessRepo   repository.WellnessHistoryRepository
	)
	if pg.Enabled() {
		pool := pg.PoolHandle()
		userRepo = repository.NewUserRepository(pool)
		predictionRepo = repository.NewPredictionHistoryRepository(pool)
		wellnessRepo = repository.NewWellnessHistoryRepository(pool)
	} else {
		userRepo = memrepo.NewUserRepo()
		predictionRepo = memrepo.NewPredictionHistoryRepo()
		wellnessRepo = memrepo.NewWellnessHistoryRepo()
	}

	revocations, closeRevocations, err := newRevocationStore(ctx, cfg, pg, dependencies, logger)
	if err != nil {
		logger.Fatal("failed to init revocation store", zap.Error(err))
	}
	defer closeRevocations()
	revocations = auth.NewNegativeCache(revocations, cfg.Revocation.NegativeCacheTTL(), nil)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	service.NewAuditService(dispatcher, logger).RegisterHandlers()

	authService, err := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    userRepo,
		Revocations: revocations,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	gate := auth.NewGate(authService.TokenManager(), revocations, userRepo, logger, metrics)

	models := scoring.BaselineModels()
	predictionService := service.NewPredictionService(models, predictionRepo)
	wellnessService := service.NewWellnessService(models, wellnessRepo)

	app := httptransport.NewServer(httptransport.ServerConfig{
		AppName:            cfg.App.Name,
		Logger:             logger,
		Metrics:            metrics,
		RequestTimeout:     cfg.App.RequestTimeout(),
		CORSAllowedOrigins: cfg.App.CORSOrigins(),
	}, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies, metrics),
		Auth:       handlers.NewAuthHandler(authService),
		Prediction: handlers.NewPredictionHandler(predictionService),
		Wellness:   handlers.NewWellnessHandler(wellnessService),
		Gate:       gate,
	})

	go worker.NewRevocationPurger(revocations, cfg.Revocation.PurgeInterval(), logger).Start(ctx)

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func newRevocationStore(ctx context.Context, cfg *config.Config, pg *persistence.Postgres, deps map[string]handlers.Pinger, logger *zap.Logger) (auth.RevocationStore, func(), error) {
	switch cfg.Revocation.Backend {
	case config.RevocationBackendRedis:
		rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
		deps["redis"] = rdb
		return repository.NewRedisRevocationStore(rdb.Client, cfg.Revocation.KeyPrefix, nil), rdb.Close, nil
	case config.RevocationBackendPostgres:
		if !pg.Enabled() {
			return nil, nil, fmt.Errorf("revocation backend %q requires postgres", cfg.Revocation.Backend)
		}
		return repository.NewPostgresRevocationStore(pg.PoolHandle()), func() {}, nil
	default:
		logger.Warn("using in-memory revocation store; revocations are lost on restart")
		return auth.NewMemoryRevocationStore(), func() {}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
