package ports

import (
	"context"

	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/validation"
)

// UserPage is one page of the user listing.
type UserPage struct {
	Items []*domain.User
	Total int64
	Page  int
	Size  int
	Skip  int
	Limit int
}

// UserService defines the administrative user operations.
type UserService interface {
	Create(ctx context.Context, in validation.UserCreate) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, skip, limit int) (*UserPage, error)
	Update(ctx context.Context, id string, in validation.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
