package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/testutil"
	"github.com/pulseboard/pulseboard/internal/types"
)

type UserServiceSuite struct {
	ServiceTestSuite
	users UserService
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.users = NewUserService(s.params)
}

func (s *UserServiceSuite) TestCreateUserIsAdminOnly() {
	req := dto.CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	}

	_, err := s.users.CreateUser(s.GetContext(), req)
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))

	resp, err := s.users.CreateUser(s.adminContext(), req)
	s.Require().NoError(err)
	s.Equal("Alice", resp.Name)
	s.Equal(types.UserRoleUser, resp.Role)
	s.Equal(types.UserStatusActive, resp.Status)
	s.Equal(types.UserPlanFree, resp.Plan)
}

func (s *UserServiceSuite) TestCreateUserDuplicateEmail() {
	_, err := s.users.CreateUser(s.adminContext(), dto.CreateUserRequest{
		Name:     "Copy",
		Email:    "test@example.com",
		Password: "secret123",
	})
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *UserServiceSuite) TestListUsersSearchAndStatus() {
	s.seedAccount("user_alice", "Alice Smith", "alice@example.com", types.UserRoleUser)
	bob := s.seedAccount("user_bob", "Bob Jones", "bob@example.com", types.UserRoleUser)
	bob.Status = types.UserStatusInactive
	s.Require().NoError(s.GetStores().Users.Update(s.GetContext(), bob))

	list, err := s.users.ListUsers(s.GetContext(), dto.ListUsersRequest{Search: "alice"})
	s.Require().NoError(err)
	s.Require().Len(list.Items, 1)
	s.Equal("Alice Smith", list.Items[0].Name)

	list, err = s.users.ListUsers(s.GetContext(), dto.ListUsersRequest{Status: "inactive"})
	s.Require().NoError(err)
	s.Require().Len(list.Items, 1)
	s.Equal("Bob Jones", list.Items[0].Name)

	// "all" is a no-op filter.
	list, err = s.users.ListUsers(s.GetContext(), dto.ListUsersRequest{Status: "all"})
	s.Require().NoError(err)
	s.Len(list.Items, 3)
	s.Equal(int64(3), list.Pagination.Total)
}

func (s *UserServiceSuite) TestListUsersSortAndPagination() {
	s.seedAccount("user_alice", "Alice", "alice@example.com", types.UserRoleUser)
	s.seedAccount("user_zed", "Zed", "zed@example.com", types.UserRoleUser)

	limit := 2
	list, err := s.users.ListUsers(s.GetContext(), dto.ListUsersRequest{
		Sort:  "name",
		Order: "desc",
		Limit: &limit,
	})
	s.Require().NoError(err)
	s.Require().Len(list.Items, 2)
	s.Equal("Zed", list.Items[0].Name)
	s.Equal("Test User", list.Items[1].Name)
	s.Equal(int64(3), list.Pagination.Total)

	offset := 2
	list, err = s.users.ListUsers(s.GetContext(), dto.ListUsersRequest{
		Sort:   "name",
		Order:  "desc",
		Limit:  &limit,
		Offset: &offset,
	})
	s.Require().NoError(err)
	s.Require().Len(list.Items, 1)
	s.Equal("Alice", list.Items[0].Name)
}

func (s *UserServiceSuite) TestUpdateUserSelfAndAdmin() {
	name := "Renamed"
	resp, err := s.users.UpdateUser(s.GetContext(), testUserID, dto.UpdateUserRequest{Name: &name})
	s.Require().NoError(err)
	s.Equal("Renamed", resp.Name)

	// Another non-admin cannot touch the account.
	other := testutil.AuthenticatedContext("user_other", types.UserRoleUser)
	_, err = s.users.UpdateUser(other, testUserID, dto.UpdateUserRequest{Name: &name})
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))

	role := types.UserRoleAdmin
	_, err = s.users.UpdateUser(s.GetContext(), testUserID, dto.UpdateUserRequest{Role: &role})
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))

	resp, err = s.users.UpdateUser(s.adminContext(), testUserID, dto.UpdateUserRequest{Role: &role})
	s.Require().NoError(err)
	s.Equal(types.UserRoleAdmin, resp.Role)
}

func (s *UserServiceSuite) TestDeleteUser() {
	s.seedAccount("user_gone", "Gone", "gone@example.com", types.UserRoleUser)

	err := s.users.DeleteUser(s.GetContext(), "user_gone")
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))

	s.Require().NoError(s.users.DeleteUser(s.adminContext(), "user_gone"))
	_, err = s.GetStores().Users.Get(s.GetContext(), "user_gone")
	s.True(ierr.IsNotFound(err))
}

func (s *UserServiceSuite) TestAdminCannotDeleteSelf() {
	s.seedAccount("user_admin", "Admin", "admin@example.com", types.UserRoleAdmin)

	err := s.users.DeleteUser(s.adminContext(), "user_admin")
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *UserServiceSuite) TestProfileRoundTrip() {
	profile, err := s.users.GetProfile(s.GetContext())
	s.Require().NoError(err)
	s.Equal("Test User", profile.Name)
	s.NotEmpty(profile.JoinedDate)

	company := "Acme"
	bio := "Building dashboards"
	profile, err = s.users.UpdateProfile(s.GetContext(), dto.UpdateProfileRequest{
		Company: &company,
		Bio:     &bio,
	})
	s.Require().NoError(err)
	s.Equal("Acme", profile.Company)
	s.Equal("Building dashboards", profile.Bio)
	s.Equal("Test User", profile.Name)
}

func (s *UserServiceSuite) TestSettingsPatchKeepsUntouchedGroups() {
	settings, err := s.users.GetSettings(s.GetContext())
	s.Require().NoError(err)
	s.Equal(types.ThemeLight, settings.Theme)

	theme := types.ThemeDark
	tz := "Europe/Berlin"
	settings, err = s.users.UpdateSettings(s.GetContext(), dto.UpdateSettingsRequest{
		Theme:    &theme,
		Timezone: &tz,
	})
	s.Require().NoError(err)
	s.Equal(types.ThemeDark, settings.Theme)
	s.Equal("Europe/Berlin", settings.Timezone)
	s.Equal(types.DefaultUserSettings().Language, settings.Language)

	bad := types.Theme("solarized")
	_, err = s.users.UpdateSettings(s.GetContext(), dto.UpdateSettingsRequest{Theme: &bad})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *UserServiceSuite) TestChangePassword() {
	err := s.users.ChangePassword(s.GetContext(), dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))

	err = s.users.ChangePassword(s.GetContext(), dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "short", // under the minimum length
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	err = s.users.ChangePassword(s.GetContext(), dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	})
	s.Require().NoError(err)

	account, err := s.GetStores().Users.Get(s.GetContext(), testUserID)
	s.Require().NoError(err)
	s.True(account.CheckPassword("newsecret"))
	s.False(account.CheckPassword("secret123"))
}
