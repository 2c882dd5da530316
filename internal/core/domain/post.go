package domain

import "time"

// Post is a single bulletin-board entry. AuthorID and AuthorUsername are a
// snapshot of the creating account; they are not refreshed if the account is
// later renamed.
type Post struct {
	ID             string    `json:"post_id"`
	AuthorID       string    `json:"user_id"`
	AuthorUsername string    `json:"username"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
