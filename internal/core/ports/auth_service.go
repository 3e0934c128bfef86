package ports

import (
	"context"

	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/validation"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(email string, role domain.Role) (string, error)
}

type AuthService interface {
	Register(ctx context.Context, in validation.UserCreate) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyEmail(ctx context.Context, userID, token string) error
}
