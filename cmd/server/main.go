package main

import (
	"context"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/pulseboard/pulseboard/internal/api"
	v1 "github.com/pulseboard/pulseboard/internal/api/v1"
	"github.com/pulseboard/pulseboard/internal/artifact"
	"github.com/pulseboard/pulseboard/internal/auth"
	"github.com/pulseboard/pulseboard/internal/cache"
	"github.com/pulseboard/pulseboard/internal/config"
	"github.com/pulseboard/pulseboard/internal/domain/metrics"
	"github.com/pulseboard/pulseboard/internal/domain/notification"
	"github.com/pulseboard/pulseboard/internal/domain/report"
	"github.com/pulseboard/pulseboard/internal/domain/user"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/mongo"
	repo "github.com/pulseboard/pulseboard/internal/repository/mongo"
	"github.com/pulseboard/pulseboard/internal/service"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			newMongoClient,
			cache.NewInMemoryCache,
			artifact.NewStore,
			auth.NewTokenService,

			repo.NewUserRepository,
			repo.NewRevenueRepository,
			repo.NewActivityRepository,
			repo.NewTrafficRepository,
			repo.NewReportRepository,
			repo.NewNotificationRepository,

			newServiceParams,
			service.NewReportRunner,
			service.NewReportScheduler,
			service.NewAuthService,
			service.NewAnalyticsService,
			service.NewDashboardService,
			service.NewReportService,
			service.NewUserService,
			service.NewNotificationService,

			v1.NewHealthHandler,
			v1.NewAuthHandler,
			v1.NewDashboardHandler,
			v1.NewAnalyticsHandler,
			v1.NewReportHandler,
			v1.NewUserHandler,
			v1.NewNotificationHandler,
			newHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			initSentry,
			ensureIndexes,
			startRunner,
			startScheduler,
			startServer,
		),
	)
	app.Run()
}

func newMongoClient(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (*mongo.Client, error) {
	client, err := mongo.NewClient(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})
	return client, nil
}

func newServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	userRepo user.Repository,
	revenueRepo metrics.RevenueRepository,
	activityRepo metrics.ActivityRepository,
	trafficRepo metrics.TrafficRepository,
	reportRepo report.Repository,
	notificationRepo notification.Repository,
	artifactStore artifact.Store,
	tokens *auth.TokenService,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:           log,
		Config:           cfg,
		UserRepo:         userRepo,
		RevenueRepo:      revenueRepo,
		ActivityRepo:     activityRepo,
		TrafficRepo:      trafficRepo,
		ReportRepo:       reportRepo,
		NotificationRepo: notificationRepo,
		ArtifactStore:    artifactStore,
		TokenService:     tokens,
	}
}

func newHandlers(
	health *v1.HealthHandler,
	authHandler *v1.AuthHandler,
	dashboard *v1.DashboardHandler,
	analytics *v1.AnalyticsHandler,
	reportHandler *v1.ReportHandler,
	userHandler *v1.UserHandler,
	notificationHandler *v1.NotificationHandler,
) api.Handlers {
	return api.Handlers{
		Health:       health,
		Auth:         authHandler,
		Dashboard:    dashboard,
		Analytics:    analytics,
		Report:       reportHandler,
		User:         userHandler,
		Notification: notificationHandler,
	}
}

func initSentry(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) error {
	if !cfg.Sentry.Enabled {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		EnableTracing:    true,
		TracesSampleRate: cfg.Sentry.SampleRate,
	})
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sentry.Flush(2 * time.Second)
			return nil
		},
	})
	log.Infow("sentry initialized", "environment", cfg.Sentry.Environment)
	return nil
}

func ensureIndexes(lc fx.Lifecycle, client *mongo.Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.EnsureIndexes(ctx)
		},
	})
}

func startRunner(lc fx.Lifecycle, runner *service.ReportRunner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			runner.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			runner.Stop()
			return nil
		},
	})
}

func startScheduler(lc fx.Lifecycle, scheduler *service.ReportScheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start()
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

func startServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Configuration, log *logger.Logger) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", cfg.Server.Address)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalw("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
