package service

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain/metrics"
	"github.com/pulseboard/pulseboard/internal/domain/user"
	"github.com/pulseboard/pulseboard/internal/testutil"
	"github.com/pulseboard/pulseboard/internal/types"
)

// ServiceTestSuite wires the in-memory stores into ServiceParams and seeds
// an authenticated account.
type ServiceTestSuite struct {
	testutil.BaseServiceTestSuite

	params ServiceParams
}

const testUserID = "user_test"

func (s *ServiceTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.params = ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		UserRepo:         stores.Users,
		RevenueRepo:      stores.Revenues,
		ActivityRepo:     stores.Activities,
		TrafficRepo:      stores.Traffic,
		ReportRepo:       stores.Reports,
		NotificationRepo: stores.Notifications,
		ArtifactStore:    stores.Artifacts,
		TokenService:     s.GetTokenService(),
	}
	s.seedAccount(testUserID, "Test User", "test@example.com", types.UserRoleUser)
}

func (s *ServiceTestSuite) seedAccount(id, name, email string, role types.UserRole) *user.User {
	account := &user.User{
		ID:         id,
		Name:       name,
		Email:      email,
		Role:       role,
		Status:     types.UserStatusActive,
		Currency:   types.DefaultCurrency,
		JoinedAt:   time.Now().UTC().AddDate(-1, 0, 0),
		LastActive: time.Now().UTC(),
		Plan:       types.UserPlanPro,
		Settings:   types.DefaultUserSettings(),
	}
	s.Require().NoError(account.SetPassword("secret123"))
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	s.Require().NoError(s.GetStores().Users.Create(context.Background(), account))
	return account
}

func (s *ServiceTestSuite) adminContext() context.Context {
	return testutil.AuthenticatedContext("user_admin", types.UserRoleAdmin)
}

func (s *ServiceTestSuite) seedRevenue(userID, month string, year int, revenue, target float64, createdAt time.Time) {
	rev := &metrics.Revenue{
		ID:      types.GenerateUUIDWithPrefix(types.UUIDPrefixRevenue),
		UserID:  userID,
		Month:   month,
		Year:    year,
		Revenue: revenue,
		Target:  target,
	}
	rev.CreatedAt = createdAt
	rev.UpdatedAt = createdAt
	s.Require().NoError(s.GetStores().Revenues.Create(context.Background(), rev))
}

func (s *ServiceTestSuite) seedActivity(userID string, date time.Time, active, newUsers int64) {
	act := &metrics.Activity{
		ID:     types.GenerateUUIDWithPrefix(types.UUIDPrefixActivity),
		UserID: userID,
		Day:    types.WeekdayNames[types.WeekdayIndex(date)],
		Date:   date,
		Active: active,
		New:    newUsers,
	}
	act.CreatedAt = date
	act.UpdatedAt = date
	s.Require().NoError(s.GetStores().Activities.Create(context.Background(), act))
}

func (s *ServiceTestSuite) seedTraffic(userID, name string, value int64, fill string, date time.Time) {
	traffic := &metrics.Traffic{
		ID:     types.GenerateUUIDWithPrefix(types.UUIDPrefixTraffic),
		UserID: userID,
		Name:   name,
		Value:  value,
		Fill:   fill,
		Date:   date,
	}
	traffic.CreatedAt = date
	traffic.UpdatedAt = date
	s.Require().NoError(s.GetStores().Traffic.Create(context.Background(), traffic))
}
