package service

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	"github.com/pulseboard/pulseboard/internal/domain/user"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

// UserService covers the account admin surface plus the caller's own
// profile and settings.
type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, req dto.ListUsersRequest) (*dto.ListUsersResponse, error)
	UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id string) error

	GetProfile(ctx context.Context) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)

	GetSettings(ctx context.Context) (*types.UserSettings, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*types.UserSettings, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type userService struct {
	ServiceParams
}

// NewUserService creates a new user service
func NewUserService(params ServiceParams) UserService {
	return &userService{ServiceParams: params}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !types.IsAdmin(ctx) {
		return nil, adminOnly()
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := req.ToUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.UserRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.Logger.Infow("user created", "user_id", account.ID, "created_by", types.GetUserID(ctx))
	return dto.NewUserResponse(account, time.Now().UTC()), nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	account, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(account, time.Now().UTC()), nil
}

func (s *userService) ListUsers(ctx context.Context, req dto.ListUsersRequest) (*dto.ListUsersResponse, error) {
	filter := req.ToFilter()
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	accounts, err := s.UserRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.UserRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]*dto.UserResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, dto.NewUserResponse(account, now))
	}
	return &dto.ListUsersResponse{
		Items: items,
		Pagination: types.PaginationResponse{
			Total:  total,
			Limit:  filter.GetLimit(),
			Offset: filter.GetOffset(),
		},
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	isSelf := types.GetUserID(ctx) == id
	if !isSelf && !types.IsAdmin(ctx) {
		return nil, adminOnly()
	}
	// Nobody promotes or suspends themselves through the self-service path.
	if (req.Role != nil || req.Status != nil) && !types.IsAdmin(ctx) {
		return nil, ierr.NewError("role and status changes require the Admin role").
			Mark(ierr.ErrPermissionDenied)
	}

	account, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString(&account.Name, req.Name)
	applyString(&account.Email, req.Email)
	applyString(&account.Company, req.Company)
	applyString(&account.Location, req.Location)
	applyString(&account.Country, req.Country)
	applyString(&account.Bio, req.Bio)
	if req.Role != nil {
		account.Role = *req.Role
	}
	if req.Status != nil {
		account.Status = *req.Status
	}
	if req.Plan != nil {
		account.Plan = *req.Plan
	}
	s.touch(ctx, account)

	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.UserRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(account, time.Now().UTC()), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if !types.IsAdmin(ctx) {
		return adminOnly()
	}
	if types.GetUserID(ctx) == id {
		return ierr.NewError("cannot delete your own account").
			Mark(ierr.ErrInvalidOperation)
	}
	return s.UserRepo.Delete(ctx, id)
}

func (s *userService) GetProfile(ctx context.Context) (*dto.ProfileResponse, error) {
	account, err := s.UserRepo.Get(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}
	return dto.NewProfileResponse(account), nil
}

func (s *userService) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	account, err := s.UserRepo.Get(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	applyString(&account.Name, req.Name)
	applyString(&account.Company, req.Company)
	applyString(&account.Location, req.Location)
	applyString(&account.Country, req.Country)
	applyString(&account.Bio, req.Bio)
	s.touch(ctx, account)

	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.UserRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return dto.NewProfileResponse(account), nil
}

func (s *userService) GetSettings(ctx context.Context) (*types.UserSettings, error) {
	account, err := s.UserRepo.Get(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}
	settings := account.Settings
	return &settings, nil
}

func (s *userService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*types.UserSettings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := s.UserRepo.Get(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	applyString(&account.Settings.Timezone, req.Timezone)
	applyString(&account.Settings.Language, req.Language)
	if req.Theme != nil {
		account.Settings.Theme = *req.Theme
	}
	if req.Notifications != nil {
		account.Settings.Notifications = *req.Notifications
	}
	if req.Display != nil {
		account.Settings.Display = *req.Display
	}
	s.touch(ctx, account)

	if err := s.UserRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	settings := account.Settings
	return &settings, nil
}

func (s *userService) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	account, err := s.UserRepo.Get(ctx, types.GetUserID(ctx))
	if err != nil {
		return err
	}
	if !account.CheckPassword(req.CurrentPassword) {
		return ierr.NewError("current password is incorrect").
			Mark(ierr.ErrPermissionDenied)
	}
	if err := account.SetPassword(req.NewPassword); err != nil {
		return err
	}
	s.touch(ctx, account)

	if err := s.UserRepo.Update(ctx, account); err != nil {
		return err
	}
	s.Logger.Infow("password changed", "user_id", account.ID)
	return nil
}

func (s *userService) touch(ctx context.Context, account *user.User) {
	account.UpdatedAt = time.Now().UTC()
	account.UpdatedBy = types.GetUserID(ctx)
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func adminOnly() error {
	return ierr.NewError("this operation requires the Admin role").
		Mark(ierr.ErrPermissionDenied)
}
