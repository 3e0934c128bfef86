package handler

import (
	"time"

	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
)

// ErrorBody is the error envelope rendered for every failed request.
type ErrorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type userLinks struct {
	Self   string `json:"self"`
	Update string `json:"update"`
	Delete string `json:"delete"`
}

type userResponse struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Nickname           string     `json:"nickname"`
	FirstName          string     `json:"first_name,omitempty"`
	LastName           string     `json:"last_name,omitempty"`
	Bio                string     `json:"bio,omitempty"`
	ProfilePictureURL  string     `json:"profile_picture_url,omitempty"`
	LinkedinProfileURL string     `json:"linkedin_profile_url,omitempty"`
	GithubProfileURL   string     `json:"github_profile_url,omitempty"`
	Role               string     `json:"role"`
	IsProfessional     bool       `json:"is_professional"`
	EmailVerified      bool       `json:"email_verified"`
	IsLocked           bool       `json:"is_locked"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Links              userLinks  `json:"_links"`
}

type userListResponse struct {
	Items []userResponse `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u *domain.User) userResponse {
	self := "/users/" + u.ID
	return userResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Nickname:           u.Nickname,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Bio:                u.Bio,
		ProfilePictureURL:  u.ProfilePictureURL,
		LinkedinProfileURL: u.LinkedinProfileURL,
		GithubProfileURL:   u.GithubProfileURL,
		Role:               u.Role.String(),
		IsProfessional:     u.IsProfessional,
		EmailVerified:      u.EmailVerified,
		IsLocked:           u.IsLocked,
		LastLoginAt:        u.LastLoginAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
		Links:              userLinks{Self: self, Update: self, Delete: self},
	}
}

func toUserListResponse(p *ports.UserPage) userListResponse {
	items := make([]userResponse, 0, len(p.Items))
	for _, u := range p.Items {
		items = append(items, toUserResponse(u))
	}
	return userListResponse{Items: items, Total: p.Total, Page: p.Page, Size: p.Size}
}
