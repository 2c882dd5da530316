package ports

import (
	"context"

	"github.com/keijiban/bulletin-board/internal/core/domain"
)

// UpdateUserInput carries the optional fields of an admin user update.
// Password is plaintext here; the service hashes it before persistence.
type UpdateUserInput struct {
	Username *string
	Password *string
	Role     *string
}

// UserService provides account management. All operations except GetByID for
// the /auth/me lookup are reserved for admins at the API boundary.
type UserService interface {
	Create(ctx context.Context, username, password, role string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
