package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/pulseboard/pulseboard/internal/auth"
	"github.com/pulseboard/pulseboard/internal/config"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/types"
)

// Stores bundles the in-memory repositories backing a service test
type Stores struct {
	Users         *InMemoryUserStore
	Revenues      *InMemoryRevenueStore
	Activities    *InMemoryActivityStore
	Traffic       *InMemoryTrafficStore
	Reports       *InMemoryReportStore
	Notifications *InMemoryNotificationStore
	Artifacts     *InMemoryArtifactStore
}

// BaseServiceTestSuite provides fresh in-memory stores and an authenticated
// context per test.
type BaseServiceTestSuite struct {
	suite.Suite

	ctx    context.Context
	stores Stores
	cfg    *config.Configuration
	log    *logger.Logger
	tokens *auth.TokenService
}

// SetupTest initializes fresh state for each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.cfg = config.GetDefaultConfig()
	s.log = logger.GetLogger()
	s.tokens = auth.NewTokenService(s.cfg)
	s.stores = Stores{
		Users:         NewInMemoryUserStore(),
		Revenues:      NewInMemoryRevenueStore(),
		Activities:    NewInMemoryActivityStore(),
		Traffic:       NewInMemoryTrafficStore(),
		Reports:       NewInMemoryReportStore(),
		Notifications: NewInMemoryNotificationStore(),
		Artifacts:     NewInMemoryArtifactStore(),
	}
	s.ctx = AuthenticatedContext("user_test", types.UserRoleUser)
}

// GetContext returns the suite's request context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// SetContext replaces the suite's request context
func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

// GetStores returns the suite's in-memory stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetConfig returns the suite's configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

// GetLogger returns the suite's logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.log
}

// GetTokenService returns the suite's token service
func (s *BaseServiceTestSuite) GetTokenService() *auth.TokenService {
	return s.tokens
}

// AuthenticatedContext builds a context carrying the given principal
func AuthenticatedContext(userID string, role types.UserRole) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUIDWithPrefix(types.UUIDPrefixRequest))
	ctx = context.WithValue(ctx, types.CtxUserID, userID)
	ctx = context.WithValue(ctx, types.CtxUserRole, role)
	return ctx
}
