package ports

import "context"

// AuthService authenticates credentials and issues access tokens.
type AuthService interface {
	// Login verifies username/password and returns a signed access token.
	// A missing user and a wrong password both surface as
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}
