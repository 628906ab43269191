package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/forum/internal/forum/domain"
	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/aussiebroadwan/forum/pkg/cryptox"
	"github.com/aussiebroadwan/forum/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; callers must not tell the two apart.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrUsernameTaken reports signup with an already-registered username.
	ErrUsernameTaken = errors.New("username_taken")

	ErrUsernameRequired = errors.New("username_required")
	ErrPasswordRequired = errors.New("password_required")
)

// AuthService owns credential verification and account creation. Session
// issuance is SessionService's job; the two meet in the HTTP handlers.
type AuthService struct {
	Store store.Store
}

// Signup creates an account and returns its public projection.
func (s *AuthService) Signup(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, ErrUsernameRequired
	}
	if password == "" {
		return domain.User{}, ErrPasswordRequired
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.Store.Users().CreateUser(ctx, username, hash)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user signed up", "user_id", user.ID)
	return user, nil
}

// Authenticate checks a username/password pair and returns the user id on
// success. Both unknown users and wrong passwords come back as
// ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (int64, error) {
	cred, err := s.Store.Users().GetCredentialByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrInvalidCredentials
		}
		return 0, err
	}

	if err := cryptox.VerifyPassword(password, cred.PasswordHash); err != nil {
		slogx.FromContext(ctx).Info("failed login attempt", "user_id", cred.UserID)
		return 0, ErrInvalidCredentials
	}

	return cred.UserID, nil
}
