package ports

import (
	"context"

	"github.com/keijiban/bulletin-board/internal/core/domain"
)

// Actor identifies the authenticated caller of a post mutation.
type Actor struct {
	UserID   string
	Username string
	Role     string
}

// PostService provides post reads and owner-or-admin gated writes.
type PostService interface {
	Create(ctx context.Context, actor Actor, title, message string) (*domain.Post, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns up to limit posts, newest first. limit <= 0 falls back to
	// DefaultPostLimit.
	List(ctx context.Context, limit int) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)
	Update(ctx context.Context, actor Actor, id string, fields UpdatePostFields) (*domain.Post, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
