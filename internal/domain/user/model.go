package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

// User is the tenant account owning every metric and report document
type User struct {
	ID           string             `json:"id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	Role         types.UserRole     `json:"role" bson:"role"`
	Status       types.UserStatus   `json:"status" bson:"status"`
	LastActive   time.Time          `json:"last_active" bson:"last_active"`
	Revenue      float64            `json:"revenue" bson:"revenue"`
	Company      string             `json:"company" bson:"company"`
	Location     string             `json:"location" bson:"location"`
	Country      string             `json:"country" bson:"country"`
	Currency     types.Currency     `json:"currency" bson:"currency"`
	JoinedAt     time.Time          `json:"joined_at" bson:"joined_at"`
	Plan         types.UserPlan     `json:"plan" bson:"plan"`
	Bio          string             `json:"bio" bson:"bio"`
	Achievements []string           `json:"achievements" bson:"achievements"`
	Settings     types.UserSettings `json:"settings" bson:"settings"`
	types.BaseModel                 `bson:",inline"`
}

// Validate validates the user document
func (u *User) Validate() error {
	if u.Name == "" {
		return ierr.NewError("name is required").Mark(ierr.ErrValidation)
	}
	if u.Email == "" {
		return ierr.NewError("email is required").Mark(ierr.ErrValidation)
	}
	if err := u.Role.Validate(); err != nil {
		return err
	}
	if err := u.Status.Validate(); err != nil {
		return err
	}
	return nil
}

// SetPassword bcrypt-hashes and stores the given plaintext password
func (u *User) SetPassword(plaintext string) error {
	if len(plaintext) < 6 {
		return ierr.NewError("password must be at least 6 characters").
			Mark(ierr.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrInternal)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext matches the stored hash
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}
