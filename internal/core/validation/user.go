package validation

import (
	"encoding/json"
	"strings"

	"github.com/99minutos/user-management/internal/core/domain"
)

const reasonEmptyUpdate = "At least one field must be provided for update"

// updateFields are the payload keys considered by RequireAnyField.
var updateFields = []string{
	"email",
	"nickname",
	"first_name",
	"last_name",
	"bio",
	"profile_picture_url",
	"linkedin_profile_url",
	"github_profile_url",
	"is_locked",
}

// UserCreate is the payload for registration and admin user creation.
type UserCreate struct {
	Email              string  `json:"email"                          validate:"required,email"`
	Nickname           *string `json:"nickname,omitempty"             validate:"omitempty,min=3,max=32,nickname"`
	FirstName          *string `json:"first_name,omitempty"`
	LastName           *string `json:"last_name,omitempty"`
	Bio                *string `json:"bio,omitempty"`
	ProfilePictureURL  *string `json:"profile_picture_url,omitempty"`
	LinkedinProfileURL *string `json:"linkedin_profile_url,omitempty"`
	GithubProfileURL   *string `json:"github_profile_url,omitempty"`
	Password           string  `json:"password"                       validate:"required"`
}

// Validate normalizes the email and runs, in order: struct tags, URL shape
// checks, password strength.
func (u *UserCreate) Validate() error {
	u.Email = normalizeEmail(u.Email)

	if err := Struct(u); err != nil {
		return err
	}
	if err := validateURLs(
		urlField{"profile_picture_url", u.ProfilePictureURL},
		urlField{"linkedin_profile_url", u.LinkedinProfileURL},
		urlField{"github_profile_url", u.GithubProfileURL},
	); err != nil {
		return err
	}
	return ValidatePassword(u.Password)
}

// UserUpdate is a partial update; a nil field was not provided.
type UserUpdate struct {
	Email              *string `json:"email,omitempty"                validate:"omitempty,email"`
	Nickname           *string `json:"nickname,omitempty"             validate:"omitempty,min=3,max=32,nickname"`
	FirstName          *string `json:"first_name,omitempty"`
	LastName           *string `json:"last_name,omitempty"`
	Bio                *string `json:"bio,omitempty"                  validate:"omitempty,max=500"`
	ProfilePictureURL  *string `json:"profile_picture_url,omitempty"`
	LinkedinProfileURL *string `json:"linkedin_profile_url,omitempty"`
	GithubProfileURL   *string `json:"github_profile_url,omitempty"`
	// IsLocked lets an administrator lock or unlock the account.
	IsLocked *bool `json:"is_locked,omitempty"`
}

// ParseUserUpdate decodes and validates an update payload. The
// at-least-one-field rule runs on the raw object before typed decoding.
func ParseUserUpdate(body []byte) (*UserUpdate, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, domain.NewValidationError("", "invalid JSON object")
	}
	if err := RequireAnyField(raw); err != nil {
		return nil, err
	}

	var u UserUpdate
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, domain.NewValidationError("", "invalid field type")
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return &u, nil
}

// Validate normalizes the email and runs struct tags, then URL shape checks.
func (u *UserUpdate) Validate() error {
	if u.Email != nil {
		e := normalizeEmail(*u.Email)
		u.Email = &e
	}
	if err := Struct(u); err != nil {
		return err
	}
	return validateURLs(
		urlField{"profile_picture_url", u.ProfilePictureURL},
		urlField{"linkedin_profile_url", u.LinkedinProfileURL},
		urlField{"github_profile_url", u.GithubProfileURL},
	)
}

// RequireAnyField fails when every known update field in raw is absent,
// null or the empty string. Other values, false and 0 included, count as
// provided.
func RequireAnyField(raw map[string]any) error {
	for _, key := range updateFields {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && s == "" {
			continue
		}
		return nil
	}
	return domain.NewValidationError("", reasonEmptyUpdate)
}

// Login accepts the OAuth2 password form (username) as well as JSON (email).
type Login struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Identifier returns the login email, preferring the explicit email field.
func (l *Login) Identifier() string {
	if l.Email != "" {
		return normalizeEmail(l.Email)
	}
	return normalizeEmail(l.Username)
}

func (l *Login) Validate() error {
	if l.Identifier() == "" {
		return domain.NewValidationError("username", "field required")
	}
	return Struct(l)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
