package ports

import (
	"context"

	"github.com/keijiban/bulletin-board/internal/core/domain"
)

// UpdateUserFields carries the optional fields of a user update. A nil (or
// empty) field is left untouched; updated_at advances whenever at least one
// field is supplied.
type UpdateUserFields struct {
	Username     *string
	PasswordHash *string
	Role         *string
}

// Empty reports whether no field is supplied.
func (f UpdateUserFields) Empty() bool {
	return !set(f.Username) && !set(f.PasswordHash) && !set(f.Role)
}

func set(s *string) bool { return s != nil && *s != "" }

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByUsername serves both the login lookup and uniqueness checks.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindAll returns every user in implementation-defined order.
	FindAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, fields UpdateUserFields) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
