package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
	"github.com/99minutos/user-management/internal/core/validation"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// UserService implements the administrative user operations.
type UserService struct {
	provisioner
	guard ports.LoginGuard
}

func NewUserService(repo ports.UserRepository, guard ports.LoginGuard, mailer ports.VerificationSender, log zerolog.Logger) *UserService {
	return &UserService{provisioner: newProvisioner(repo, mailer, log), guard: guard}
}

func (s *UserService) Create(ctx context.Context, in validation.UserCreate) (*domain.User, error) {
	return s.provision(ctx, in)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one page of users. limit defaults to 10 and is capped at 100.
func (s *UserService) List(ctx context.Context, skip, limit int) (*ports.UserPage, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &ports.UserPage{
		Items: users,
		Total: total,
		Page:  skip/limit + 1,
		Size:  len(users),
		Skip:  skip,
		Limit: limit,
	}, nil
}

// Update applies the provided fields only. Email and nickname changes are
// checked for uniqueness first.
func (s *UserService) Update(ctx context.Context, id string, in validation.UserUpdate) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != "" && *in.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *in.Email); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.Nickname != nil && *in.Nickname != "" && *in.Nickname != user.Nickname {
		if err := s.ensureNicknameFree(ctx, *in.Nickname); err != nil {
			return nil, err
		}
		user.Nickname = *in.Nickname
	}
	assign(&user.FirstName, in.FirstName)
	assign(&user.LastName, in.LastName)
	assign(&user.Bio, in.Bio)
	assign(&user.ProfilePictureURL, in.ProfilePictureURL)
	assign(&user.LinkedinProfileURL, in.LinkedinProfileURL)
	assign(&user.GithubProfileURL, in.GithubProfileURL)
	unlocked := in.IsLocked != nil && !*in.IsLocked && user.IsLocked
	if in.IsLocked != nil {
		user.IsLocked = *in.IsLocked
		if !user.IsLocked {
			user.FailedLoginAttempts = 0
		}
	}
	user.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, user); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return nil, err
	}

	if unlocked {
		// The failure window restarts from zero after an unlock.
		if err := s.guard.Reset(ctx, user.Email); err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Msg("failed to reset login attempts")
		}
		s.log.Info().Str("user_id", id).Msg("account unlocked")
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
