package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
	"github.com/99minutos/user-management/internal/core/validation"
)

const nicknameAttempts = 10

// provisioner creates user records. Registration and admin creation share it.
type provisioner struct {
	repo     ports.UserRepository
	mailer   ports.VerificationSender
	log      zerolog.Logger
	now      func() time.Time
	hashCost int
}

func newProvisioner(repo ports.UserRepository, mailer ports.VerificationSender, log zerolog.Logger) provisioner {
	return provisioner{
		repo:     repo,
		mailer:   mailer,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		hashCost: bcrypt.DefaultCost,
	}
}

// provision stores a new user from a validated payload. The very first user
// becomes a verified ADMIN; everyone else starts ANONYMOUS and is sent a
// verification email.
func (p provisioner) provision(ctx context.Context, in validation.UserCreate) (*domain.User, error) {
	if err := p.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}
	nickname, err := p.pickNickname(ctx, in.Nickname)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), p.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	total, err := p.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	now := p.now()
	user := &domain.User{
		ID:                 uuid.NewString(),
		Email:              in.Email,
		Nickname:           nickname,
		FirstName:          deref(in.FirstName),
		LastName:           deref(in.LastName),
		Bio:                deref(in.Bio),
		ProfilePictureURL:  deref(in.ProfilePictureURL),
		LinkedinProfileURL: deref(in.LinkedinProfileURL),
		GithubProfileURL:   deref(in.GithubProfileURL),
		PasswordHash:       string(hash),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if total == 0 {
		user.Role = domain.RoleAdmin
		user.EmailVerified = true
	} else {
		user.Role = domain.RoleAnonymous
		token, err := newVerificationToken()
		if err != nil {
			return nil, err
		}
		user.VerificationToken = token
	}

	if err := p.repo.Create(ctx, user); err != nil {
		p.log.Error().Err(err).Str("email", user.Email).Msg("failed to create user")
		return nil, err
	}

	if user.VerificationToken != "" {
		p.mailer.SendVerification(ports.VerificationEmail{
			UserID:   user.ID,
			Email:    user.Email,
			Nickname: user.Nickname,
			Token:    user.VerificationToken,
		})
	}

	p.log.Info().Str("user_id", user.ID).Str("role", user.Role.String()).Msg("user created")
	return user, nil
}

func (p provisioner) ensureEmailFree(ctx context.Context, email string) error {
	_, err := p.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.ErrUserExists
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("lookup email: %w", err)
	}
}

func (p provisioner) ensureNicknameFree(ctx context.Context, nickname string) error {
	_, err := p.repo.FindByNickname(ctx, nickname)
	switch {
	case err == nil:
		return domain.ErrNicknameTaken
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("lookup nickname: %w", err)
	}
}

// pickNickname keeps a requested nickname or generates a free one.
func (p provisioner) pickNickname(ctx context.Context, requested *string) (string, error) {
	if requested != nil && *requested != "" {
		if err := p.ensureNicknameFree(ctx, *requested); err != nil {
			return "", err
		}
		return *requested, nil
	}
	for range nicknameAttempts {
		candidate := generateNickname()
		err := p.ensureNicknameFree(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, domain.ErrNicknameTaken) {
			return "", err
		}
	}
	return "", domain.ErrNicknameTaken
}

func newVerificationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
