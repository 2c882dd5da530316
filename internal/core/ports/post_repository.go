package ports

import (
	"context"

	"github.com/keijiban/bulletin-board/internal/core/domain"
)

// DefaultPostLimit caps chronological listings when the caller does not ask
// for a specific page size.
const DefaultPostLimit = 100

// UpdatePostFields carries the optional fields of a post update. A nil (or
// empty) field is left untouched.
type UpdatePostFields struct {
	Title   *string
	Message *string
}

// Empty reports whether no field is supplied.
func (f UpdatePostFields) Empty() bool {
	return !set(f.Title) && !set(f.Message)
}

// PostRepository defines persistence for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// FindAll returns up to limit posts ordered by created_at descending.
	FindAll(ctx context.Context, limit int) ([]*domain.Post, error)
	// FindByAuthor returns the author's posts in implementation-defined order.
	FindByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)
	// Update touches only the supplied fields plus updated_at. Callers are
	// expected to short-circuit empty updates before reaching the repository.
	Update(ctx context.Context, id string, fields UpdatePostFields) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}
