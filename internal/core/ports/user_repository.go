package ports

import (
	"context"

	"github.com/99minutos/user-management/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByNickname(ctx context.Context, nickname string) (*domain.User, error)
	// List returns users ordered by creation time.
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	// Update replaces the stored record with the same ID.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// LoginGuard counts failed logins per email inside a fixed window that
// opens at the first failure; the count restarts once the window expires.
type LoginGuard interface {
	// RegisterFailure records one failure and returns the count in the
	// current window.
	RegisterFailure(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}
