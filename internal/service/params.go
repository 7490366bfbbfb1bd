package service

import (
	"github.com/pulseboard/pulseboard/internal/artifact"
	"github.com/pulseboard/pulseboard/internal/auth"
	"github.com/pulseboard/pulseboard/internal/config"
	"github.com/pulseboard/pulseboard/internal/domain/metrics"
	"github.com/pulseboard/pulseboard/internal/domain/notification"
	"github.com/pulseboard/pulseboard/internal/domain/report"
	"github.com/pulseboard/pulseboard/internal/domain/user"
	"github.com/pulseboard/pulseboard/internal/logger"
)

// ServiceParams bundles the dependencies shared by every service. Services
// embed it so constructors stay one-liner wide as the dependency set grows.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	UserRepo         user.Repository
	RevenueRepo      metrics.RevenueRepository
	ActivityRepo     metrics.ActivityRepository
	TrafficRepo      metrics.TrafficRepository
	ReportRepo       report.Repository
	NotificationRepo notification.Repository

	ArtifactStore artifact.Store
	TokenService  *auth.TokenService
}
