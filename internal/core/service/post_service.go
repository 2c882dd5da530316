package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/keijiban/bulletin-board/internal/core/auth"
	"github.com/keijiban/bulletin-board/internal/core/domain"
	"github.com/keijiban/bulletin-board/internal/core/ports"
)

// FeedCache abstracts the short-lived cache in front of the chronological
// post listing (Redis). A nil FeedCache disables caching entirely.
type FeedCache interface {
	GetFeed(ctx context.Context, limit int) ([]*domain.Post, error)
	SetFeed(ctx context.Context, limit int, posts []*domain.Post) error
	Invalidate(ctx context.Context) error
}

// PostService implements post reads and owner-or-admin gated writes.
type PostService struct {
	posts ports.PostRepository
	cache FeedCache
	log   zerolog.Logger
}

func NewPostService(posts ports.PostRepository, cache FeedCache, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, cache: cache, log: log}
}

// Create stores a new post stamped with a snapshot of the author's identity.
// The snapshot is immutable; renaming the account later does not touch it.
func (s *PostService) Create(ctx context.Context, actor ports.Actor, title, message string) (*domain.Post, error) {
	now := time.Now().UTC()
	post := &domain.Post{
		ID:             uuid.NewString(),
		AuthorID:       actor.UserID,
		AuthorUsername: actor.Username,
		Title:          title,
		Message:        message,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	s.log.Info().Str("post_id", created.ID).Str("user_id", actor.UserID).Msg("post created")
	return created, nil
}

func (s *PostService) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// List returns up to limit posts, newest first. Reads go through the feed
// cache when one is configured; cache failures fall back to the repository.
func (s *PostService) List(ctx context.Context, limit int) ([]*domain.Post, error) {
	if limit <= 0 {
		limit = ports.DefaultPostLimit
	}

	if s.cache != nil {
		cached, err := s.cache.GetFeed(ctx, limit)
		if err != nil {
			s.log.Warn().Err(err).Msg("feed cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	posts, err := s.posts.FindAll(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetFeed(ctx, limit, posts); err != nil {
			s.log.Warn().Err(err).Msg("feed cache write failed")
		}
	}
	return posts, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	return s.posts.FindByAuthor(ctx, authorID)
}

// Update mutates a post on behalf of actor. Only the author or an admin may
// write. An update carrying no fields returns the post unchanged without
// advancing updated_at.
func (s *PostService) Update(ctx context.Context, actor ports.Actor, id string, fields ports.UpdatePostFields) (*domain.Post, error) {
	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.CanModify(existing.AuthorID, actor.UserID, actor.Role) {
		return nil, domain.ErrForbidden
	}

	if fields.Empty() {
		return existing, nil
	}

	updated, err := s.posts.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	s.log.Info().Str("post_id", id).Str("user_id", actor.UserID).Msg("post updated")
	return updated, nil
}

// Delete removes a post on behalf of actor, subject to the same
// owner-or-admin rule as Update.
func (s *PostService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !auth.CanModify(existing.AuthorID, actor.UserID, actor.Role) {
		return domain.ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateFeed(ctx)
	s.log.Info().Str("post_id", id).Str("user_id", actor.UserID).Msg("post deleted")
	return nil
}

func (s *PostService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("feed cache invalidation failed")
	}
}
