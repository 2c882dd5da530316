package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/keijiban/bulletin-board/internal/core/auth"
	"github.com/keijiban/bulletin-board/internal/core/domain"
	"github.com/keijiban/bulletin-board/internal/core/ports"
)

// AuthService implements credential verification and token issuance.
type AuthService struct {
	users  ports.UserRepository
	tokens *auth.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *auth.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Login verifies the credentials and returns a signed access token carrying
// the user's identity and role. A lookup miss and a hash mismatch both
// collapse to ErrInvalidCredentials so the caller cannot enumerate usernames.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		s.log.Debug().Str("username", username).Msg("password mismatch")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role, 0)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("login succeeded")
	return token, nil
}
