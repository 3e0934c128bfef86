package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUserExists               = errors.New("email already exists")
	ErrNicknameTaken            = errors.New("nickname already taken")
	ErrInvalidCredentials       = errors.New("incorrect email or password")
	ErrAccountLocked            = errors.New("account locked due to too many failed login attempts")
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
)

// User is the persisted user record.
type User struct {
	ID                  string     `json:"id" bson:"_id"`
	Email               string     `json:"email" bson:"email"`
	Nickname            string     `json:"nickname" bson:"nickname"`
	FirstName           string     `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName            string     `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Bio                 string     `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfilePictureURL   string     `json:"profile_picture_url,omitempty" bson:"profile_picture_url,omitempty"`
	LinkedinProfileURL  string     `json:"linkedin_profile_url,omitempty" bson:"linkedin_profile_url,omitempty"`
	GithubProfileURL    string     `json:"github_profile_url,omitempty" bson:"github_profile_url,omitempty"`
	Role                Role       `json:"role" bson:"role"`
	IsProfessional      bool       `json:"is_professional" bson:"is_professional"`
	EmailVerified       bool       `json:"email_verified" bson:"email_verified"`
	VerificationToken   string     `json:"-" bson:"verification_token,omitempty"`
	IsLocked            bool       `json:"is_locked" bson:"is_locked"`
	FailedLoginAttempts int        `json:"-" bson:"failed_login_attempts"`
	PasswordHash        string     `json:"-" bson:"password_hash"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" bson:"updated_at"`
}
