package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

type AuthServiceSuite struct {
	ServiceTestSuite
	auth AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.auth = NewAuthService(s.params)
}

func (s *AuthServiceSuite) TestSignup() {
	resp, err := s.auth.Signup(s.GetContext(), dto.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal("Alice", resp.User.Name)
	s.Equal(types.UserRoleUser, resp.User.Role)

	claims, err := s.GetTokenService().Verify(resp.Token)
	s.Require().NoError(err)
	s.Equal(resp.User.ID, claims.Subject)
	s.Equal(types.UserRoleUser, claims.Role)
}

func (s *AuthServiceSuite) TestSignupDuplicateEmail() {
	_, err := s.auth.Signup(s.GetContext(), dto.SignupRequest{
		Name:     "Copycat",
		Email:    "test@example.com",
		Password: "secret123",
	})
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *AuthServiceSuite) TestSignupShortPassword() {
	_, err := s.auth.Signup(s.GetContext(), dto.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "12345",
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestLogin() {
	resp, err := s.auth.Login(s.GetContext(), dto.LoginRequest{
		Email:    "test@example.com",
		Password: "secret123",
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal(testUserID, resp.User.ID)

	claims, err := s.GetTokenService().Verify(resp.Token)
	s.Require().NoError(err)
	s.Equal(testUserID, claims.Subject)
}

func (s *AuthServiceSuite) TestLoginBadCredentials() {
	// Unknown email and wrong password fail the same way.
	_, err := s.auth.Login(s.GetContext(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))

	_, err = s.auth.Login(s.GetContext(), dto.LoginRequest{
		Email:    "test@example.com",
		Password: "wrongpass",
	})
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestLoginTouchesLastActive() {
	before, err := s.GetStores().Users.Get(s.GetContext(), testUserID)
	s.Require().NoError(err)
	stale := before.LastActive

	_, err = s.auth.Login(s.GetContext(), dto.LoginRequest{
		Email:    "test@example.com",
		Password: "secret123",
	})
	s.Require().NoError(err)

	after, err := s.GetStores().Users.Get(s.GetContext(), testUserID)
	s.Require().NoError(err)
	s.False(after.LastActive.Before(stale))
}

func (s *AuthServiceSuite) TestMe() {
	resp, err := s.auth.Me(s.GetContext())
	s.Require().NoError(err)
	s.Equal(testUserID, resp.ID)
	s.Equal("test@example.com", resp.Email)
}
