package service

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	"github.com/pulseboard/pulseboard/internal/domain/user"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

// AuthService handles signup, login, and principal introspection
type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context) (*dto.UserResponse, error)
}

type authService struct {
	ServiceParams
}

// NewAuthService creates a new auth service
func NewAuthService(params ServiceParams) AuthService {
	return &authService{ServiceParams: params}
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.UserRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ierr.NewError("email is already registered").
			WithHint("Log in instead, or use a different email").
			Mark(ierr.ErrAlreadyExists)
	} else if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	createReq := dto.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	account, err := createReq.ToUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.UserRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.Logger.Infow("user signed up", "user_id", account.ID)
	return s.authResponse(account)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !account.CheckPassword(req.Password) {
		return nil, invalidCredentials()
	}

	account.LastActive = time.Now().UTC()
	if err := s.UserRepo.Update(ctx, account); err != nil {
		s.Logger.Warnw("failed to update last active", "user_id", account.ID, "error", err)
	}

	return s.authResponse(account)
}

func (s *authService) Me(ctx context.Context) (*dto.UserResponse, error) {
	account, err := s.UserRepo.Get(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(account, time.Now().UTC()), nil
}

func (s *authService) authResponse(account *user.User) (*dto.AuthResponse, error) {
	token, err := s.TokenService.Issue(account.ID, account.Role)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(account, time.Now().UTC()),
	}, nil
}

func invalidCredentials() error {
	return ierr.NewError("invalid email or password").
		Mark(ierr.ErrPermissionDenied)
}
