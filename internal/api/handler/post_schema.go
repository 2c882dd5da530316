package handler

import (
	"time"

	"github.com/keijiban/bulletin-board/internal/core/domain"
)

type createPostRequest struct {
	Title   string `json:"title"   validate:"required,min=1,max=100"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// updatePostRequest carries optional fields only; omitted and empty are
// treated identically (left untouched).
type updatePostRequest struct {
	Title   *string `json:"title"   validate:"omitempty,min=1,max=100"`
	Message *string `json:"message" validate:"omitempty,min=1,max=2000"`
}

type postResponse struct {
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		PostID:    p.ID,
		UserID:    p.AuthorID,
		Username:  p.AuthorUsername,
		Title:     p.Title,
		Message:   p.Message,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostResponses(posts []*domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}
