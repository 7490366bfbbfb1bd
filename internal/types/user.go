package types

import ierr "github.com/pulseboard/pulseboard/internal/errors"

// UserRole controls what a principal may read and mutate
type UserRole string

const (
	UserRoleAdmin  UserRole = "Admin"
	UserRoleEditor UserRole = "Editor"
	UserRoleUser   UserRole = "User"
)

// Validate validates the user role
func (r UserRole) Validate() error {
	switch r {
	case UserRoleAdmin, UserRoleEditor, UserRoleUser:
		return nil
	default:
		return ierr.NewErrorf("invalid user role: %s", r).
			WithHint("role must be one of Admin, Editor, User").
			Mark(ierr.ErrValidation)
	}
}

// UserStatus is the account lifecycle state
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusPending  UserStatus = "pending"
)

// Validate validates the user status
func (s UserStatus) Validate() error {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusPending:
		return nil
	default:
		return ierr.NewErrorf("invalid user status: %s", s).
			WithHint("status must be one of active, inactive, pending").
			Mark(ierr.ErrValidation)
	}
}

// UserPlan is the subscription tier shown on the profile
type UserPlan string

const (
	UserPlanFree       UserPlan = "Free"
	UserPlanPro        UserPlan = "Pro"
	UserPlanEnterprise UserPlan = "Enterprise"
)

// Theme is the UI theme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// NotificationPreferences are the per-channel notification toggles
type NotificationPreferences struct {
	Email         bool `json:"email" bson:"email"`
	Push          bool `json:"push" bson:"push"`
	WeeklyReports bool `json:"weekly_reports" bson:"weekly_reports"`
	Marketing     bool `json:"marketing" bson:"marketing"`
}

// DisplayPreferences are the UI display toggles
type DisplayPreferences struct {
	CompactMode  bool `json:"compact_mode" bson:"compact_mode"`
	Animations   bool `json:"animations" bson:"animations"`
	HighContrast bool `json:"high_contrast" bson:"high_contrast"`
}

// UserSettings is the per-user preferences document. It is always stored
// fully populated; DefaultUserSettings supplies the defaults at creation
// instead of merging them in on every read.
type UserSettings struct {
	Timezone      string                  `json:"timezone" bson:"timezone"`
	Language      string                  `json:"language" bson:"language"`
	Theme         Theme                   `json:"theme" bson:"theme"`
	Notifications NotificationPreferences `json:"notifications" bson:"notifications"`
	Display       DisplayPreferences      `json:"display" bson:"display"`
}

// DefaultUserSettings returns the settings applied to new accounts
func DefaultUserSettings() UserSettings {
	return UserSettings{
		Timezone: "utc-8",
		Language: "en",
		Theme:    ThemeLight,
		Notifications: NotificationPreferences{
			Email:         true,
			Push:          true,
			WeeklyReports: false,
			Marketing:     false,
		},
		Display: DisplayPreferences{
			CompactMode:  false,
			Animations:   true,
			HighContrast: false,
		},
	}
}
