package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
	"github.com/99minutos/user-management/internal/core/validation"
)

const defaultMaxLoginAttempts = 5

// AuthService implements registration, login and email verification.
type AuthService struct {
	provisioner
	guard       ports.LoginGuard
	tokens      ports.TokenIssuer
	maxAttempts int64
}

func NewAuthService(
	repo ports.UserRepository,
	guard ports.LoginGuard,
	mailer ports.VerificationSender,
	tokens ports.TokenIssuer,
	maxAttempts int,
	log zerolog.Logger,
) *AuthService {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxLoginAttempts
	}
	return &AuthService{
		provisioner: newProvisioner(repo, mailer, log),
		guard:       guard,
		tokens:      tokens,
		maxAttempts: int64(maxAttempts),
	}
}

func (s *AuthService) Register(ctx context.Context, in validation.UserCreate) (*domain.User, error) {
	return s.provision(ctx, in)
}

// Login checks the credentials and returns a signed access token. Unknown
// emails, unverified accounts and wrong passwords are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}
	if user.IsLocked {
		return "", domain.ErrAccountLocked
	}
	if !user.EmailVerified {
		return "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", s.recordFailure(ctx, user)
	}

	if err := s.guard.Reset(ctx, user.Email); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to reset login attempts")
	}
	now := s.now()
	user.FailedLoginAttempts = 0
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := s.repo.Update(ctx, user); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("login: issue token: %w", err)
	}
	return token, nil
}

// recordFailure counts a wrong password and locks the account once the
// limit is reached. It always returns ErrInvalidCredentials unless the
// store fails.
func (s *AuthService) recordFailure(ctx context.Context, user *domain.User) error {
	count, err := s.guard.RegisterFailure(ctx, user.Email)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("login guard unavailable, using stored counter")
		count = int64(user.FailedLoginAttempts) + 1
	}

	user.FailedLoginAttempts = int(count)
	user.UpdatedAt = s.now()
	if count >= s.maxAttempts {
		user.IsLocked = true
		s.log.Warn().Str("user_id", user.ID).Int64("attempts", count).Msg("account locked")
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("login: record failure: %w", err)
	}
	return domain.ErrInvalidCredentials
}

// VerifyEmail marks the email as verified when token matches the one issued
// at creation, promoting ANONYMOUS users to AUTHENTICATED.
func (s *AuthService) VerifyEmail(ctx context.Context, userID, token string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidVerificationToken
		}
		return fmt.Errorf("verify email: %w", err)
	}
	if user.VerificationToken == "" ||
		subtle.ConstantTimeCompare([]byte(user.VerificationToken), []byte(token)) != 1 {
		return domain.ErrInvalidVerificationToken
	}

	user.EmailVerified = true
	user.VerificationToken = ""
	if user.Role == domain.RoleAnonymous {
		user.Role = domain.RoleAuthenticated
	}
	user.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("verify email: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("email verified")
	return nil
}
