package dto

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pulseboard/pulseboard/internal/domain/user"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
	"github.com/pulseboard/pulseboard/internal/validator"
)

// CreateUserRequest creates a new account (admin surface)
type CreateUserRequest struct {
	Name     string           `json:"name" binding:"required"`
	Email    string           `json:"email" binding:"required,email"`
	Password string           `json:"password" binding:"required"`
	Role     types.UserRole   `json:"role"`
	Status   types.UserStatus `json:"status"`
	Company  string           `json:"company"`
	Location string           `json:"location"`
	Country  string           `json:"country"`
	Plan     types.UserPlan   `json:"plan"`
}

// Validate validates the create user request
func (r *CreateUserRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Role != "" {
		if err := r.Role.Validate(); err != nil {
			return err
		}
	}
	if r.Status != "" {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToUser builds the domain user with defaults filled in
func (r *CreateUserRequest) ToUser(ctx context.Context) (*user.User, error) {
	now := time.Now().UTC()
	u := &user.User{
		ID:         types.GenerateUUIDWithPrefix(types.UUIDPrefixUser),
		Name:       r.Name,
		Email:      r.Email,
		Role:       r.Role,
		Status:     r.Status,
		Company:    r.Company,
		Location:   r.Location,
		Country:    r.Country,
		Currency:   types.DefaultCurrency,
		JoinedAt:   now,
		LastActive: now,
		Plan:       r.Plan,
		Settings:   types.DefaultUserSettings(),
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
	if u.Role == "" {
		u.Role = types.UserRoleUser
	}
	if u.Status == "" {
		u.Status = types.UserStatusActive
	}
	if u.Plan == "" {
		u.Plan = types.UserPlanFree
	}
	if err := u.SetPassword(r.Password); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUserRequest patches an account; nil fields stay untouched.
// Role and status changes are admin-only, enforced in the service.
type UpdateUserRequest struct {
	Name     *string           `json:"name,omitempty"`
	Email    *string           `json:"email,omitempty"`
	Role     *types.UserRole   `json:"role,omitempty"`
	Status   *types.UserStatus `json:"status,omitempty"`
	Company  *string           `json:"company,omitempty"`
	Location *string           `json:"location,omitempty"`
	Country  *string           `json:"country,omitempty"`
	Plan     *types.UserPlan   `json:"plan,omitempty"`
	Bio      *string           `json:"bio,omitempty"`
}

// Validate validates the update user request
func (r *UpdateUserRequest) Validate() error {
	if r.Role != nil {
		if err := r.Role.Validate(); err != nil {
			return err
		}
	}
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UserResponse is the API shape of an account row
type UserResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Role       types.UserRole   `json:"role"`
	Status     types.UserStatus `json:"status"`
	LastActive string           `json:"last_active"`
	Revenue    string           `json:"revenue"`
	Company    string           `json:"company,omitempty"`
	Location   string           `json:"location,omitempty"`
	Country    string           `json:"country,omitempty"`
	Plan       types.UserPlan   `json:"plan"`
}

// NewUserResponse maps a domain user to its API shape
func NewUserResponse(u *user.User, now time.Time) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Status:     u.Status,
		LastActive: types.HumanizeTimeSince(u.LastActive, now),
		Revenue:    u.Currency.FormatAmount(decimal.NewFromFloat(u.Revenue)),
		Company:    u.Company,
		Location:   u.Location,
		Country:    u.Country,
		Plan:       u.Plan,
	}
}

// ListUsersRequest carries the list query parameters
type ListUsersRequest struct {
	Search string `form:"search"`
	Status string `form:"status"`
	Sort   string `form:"sort"`
	Order  string `form:"order"`
	Limit  *int   `form:"limit"`
	Offset *int   `form:"offset"`
}

// ToFilter builds the repository filter
func (r *ListUsersRequest) ToFilter() *user.Filter {
	f := user.NewFilter()
	f.Search = r.Search
	f.Status = r.Status
	if r.Sort != "" {
		sort := r.Sort
		f.Sort = &sort
	}
	if r.Order != "" {
		f.Order = types.SortOrder(r.Order)
	}
	if r.Limit != nil {
		f.Limit = r.Limit
	}
	if r.Offset != nil {
		f.Offset = r.Offset
	}
	return f
}

// ListUsersResponse is the paginated account list
type ListUsersResponse struct {
	Items      []*UserResponse          `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// ProfileResponse is the authenticated user's own profile
type ProfileResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         types.UserRole `json:"role"`
	Company      string         `json:"company,omitempty"`
	Location     string         `json:"location,omitempty"`
	Country      string         `json:"country,omitempty"`
	Bio          string         `json:"bio,omitempty"`
	Plan         types.UserPlan `json:"plan"`
	JoinedDate   string         `json:"joined_date"`
	RevenueStat  string         `json:"revenue_stat"`
	Achievements []string       `json:"achievements,omitempty"`
}

// NewProfileResponse maps a domain user to the profile shape
func NewProfileResponse(u *user.User) *ProfileResponse {
	return &ProfileResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Company:      u.Company,
		Location:     u.Location,
		Country:      u.Country,
		Bio:          u.Bio,
		Plan:         u.Plan,
		JoinedDate:   types.FormatMonthYear(u.JoinedAt),
		RevenueStat:  u.Currency.FormatAmount(decimal.NewFromFloat(u.Revenue)),
		Achievements: u.Achievements,
	}
}

// UpdateProfileRequest patches the caller's own profile
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Company  *string `json:"company,omitempty"`
	Location *string `json:"location,omitempty"`
	Country  *string `json:"country,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

// UpdateSettingsRequest patches the caller's settings; nil groups keep
// their stored values.
type UpdateSettingsRequest struct {
	Timezone      *string                        `json:"timezone,omitempty"`
	Language      *string                        `json:"language,omitempty"`
	Theme         *types.Theme                   `json:"theme,omitempty"`
	Notifications *types.NotificationPreferences `json:"notifications,omitempty"`
	Display       *types.DisplayPreferences      `json:"display,omitempty"`
}

// Validate validates the update settings request
func (r *UpdateSettingsRequest) Validate() error {
	if r.Theme != nil && *r.Theme != types.ThemeLight && *r.Theme != types.ThemeDark {
		return ierr.NewErrorf("invalid theme: %s", *r.Theme).
			WithHint("theme must be light or dark").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ChangePasswordRequest rotates the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// Validate validates the change password request
func (r *ChangePasswordRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if len(r.NewPassword) < 6 {
		return ierr.NewError("new password must be at least 6 characters").
			Mark(ierr.ErrValidation)
	}
	return nil
}
