package api

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/pulseboard/pulseboard/internal/api/v1"
	"github.com/pulseboard/pulseboard/internal/auth"
	"github.com/pulseboard/pulseboard/internal/config"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/rest/middleware"
)

// Handlers aggregates every route handler the router mounts
type Handlers struct {
	Health       *v1.HealthHandler
	Auth         *v1.AuthHandler
	Dashboard    *v1.DashboardHandler
	Analytics    *v1.AnalyticsHandler
	Report       *v1.ReportHandler
	User         *v1.UserHandler
	Notification *v1.NotificationHandler
}

// NewRouter builds the gin engine with the full middleware chain and the
// v1 route tree.
func NewRouter(
	handlers Handlers,
	cfg *config.Configuration,
	log *logger.Logger,
	tokens *auth.TokenService,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware(cfg),
		middleware.SentryMiddleware(cfg),
		middleware.LoggingMiddleware(log),
		middleware.ErrorHandler(log),
	)

	router.GET("/health", handlers.Health.Health)

	public := router.Group("/v1")
	{
		public.POST("/auth/signup", handlers.Auth.Signup)
		public.POST("/auth/login", handlers.Auth.Login)
	}

	private := router.Group("/v1")
	private.Use(
		middleware.AuthenticateMiddleware(tokens),
		middleware.SentryUserContextMiddleware,
	)
	{
		private.GET("/auth/me", handlers.Auth.Me)

		dashboard := private.Group("/dashboard")
		{
			dashboard.GET("/kpis", handlers.Dashboard.GetKPIs)
			dashboard.GET("/revenue", handlers.Dashboard.GetRevenue)
			dashboard.GET("/activity", handlers.Dashboard.GetActivity)
			dashboard.GET("/traffic", handlers.Dashboard.GetTraffic)
		}

		analytics := private.Group("/analytics")
		{
			analytics.GET("/revenue", handlers.Analytics.GetRevenue)
			analytics.GET("/revenue/breakdown", handlers.Analytics.GetRevenueBreakdown)
			analytics.GET("/activity", handlers.Analytics.GetActivity)
			analytics.GET("/traffic", handlers.Analytics.GetTraffic)
		}

		reports := private.Group("/reports")
		{
			reports.GET("", handlers.Report.ListReports)
			reports.GET("/scheduled", handlers.Report.ListScheduledReports)
			reports.POST("", handlers.Report.CreateReport)
			reports.GET("/:id", handlers.Report.GetReport)
			reports.GET("/:id/download", handlers.Report.DownloadReport)
			reports.DELETE("/:id", handlers.Report.DeleteReport)
		}

		users := private.Group("/users")
		{
			users.GET("", handlers.User.ListUsers)
			users.POST("", handlers.User.CreateUser)
			users.GET("/:id", handlers.User.GetUser)
			users.PUT("/:id", handlers.User.UpdateUser)
			users.DELETE("/:id", handlers.User.DeleteUser)
		}

		notifications := private.Group("/notifications")
		{
			notifications.GET("", handlers.Notification.ListNotifications)
			notifications.POST("", handlers.Notification.CreateNotification)
			notifications.POST("/read-all", handlers.Notification.MarkAllRead)
			notifications.GET("/:id", handlers.Notification.GetNotification)
			notifications.POST("/:id/read", handlers.Notification.MarkRead)
			notifications.DELETE("/:id", handlers.Notification.DeleteNotification)
		}

		profile := private.Group("/profile")
		{
			profile.GET("", handlers.User.GetProfile)
			profile.PUT("", handlers.User.UpdateProfile)
		}

		settings := private.Group("/settings")
		{
			settings.GET("", handlers.User.GetSettings)
			settings.PUT("", handlers.User.UpdateSettings)
			settings.POST("/password", handlers.User.ChangePassword)
			settings.POST("/2fa", handlers.User.Toggle2FA)
		}
	}

	return router
}
