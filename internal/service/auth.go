// Package service contains the business logic layer.
//
//	Handler (HTTP) → Service (rules) → Repository (store)
//
// Services take and return plain Go values and apperror errors; they know
// nothing about HTTP status codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sakif/talk-catalog/internal/apperror"
	"github.com/sakif/talk-catalog/internal/auth"
	"github.com/sakif/talk-catalog/internal/model"
	"github.com/sakif/talk-catalog/internal/repository"
)

const MinPasswordLength = 8

// User-facing messages. Clients match on these, so they are constants.
const (
	MessagePasswordTooShort   = "Password needs to be at least 8 characters long"
	MessageUsernameRequired   = "username is required"
	MessageCredentialsInvalid = "Credentials didn't match"
)

// AuthService handles account creation, login and token checks.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenGenerator
	logger    *slog.Logger
}

// AuthService is what auth.RequireToken calls on every protected request.
var _ auth.Authenticator = (*AuthService)(nil)

func NewAuthService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	tokens *auth.TokenGenerator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates an account and issues its access token.
//
// The token is generated here, once, and stored with the account. It never
// changes afterwards: Login hands back this same value.
//
// Errors:
//   - apperror.ErrValidation: empty username, password too short or too long
//   - apperror.ErrConflict: username already taken (message from the store)
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", MessageUsernameRequired)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password", MessagePasswordTooShort)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperror.ValidationFailed("password", err.Error())
		}
		return nil, fmt.Errorf("service/auth: %w", err)
	}

	token, err := s.tokens.Generate()
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		AccessToken:  token,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			s.logger.Info("registration rejected: username taken", slog.String("username", username))
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: creating user %q: %w", username, err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Login checks the credentials and returns the account (with its token).
//
// An unknown username and a wrong password produce the same
// apperror.ErrUnauthorized error, so callers cannot probe which usernames
// exist. Any other error is a store failure.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperror.Unauthorized(MessageCredentialsInvalid)
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(MessageCredentialsInvalid)
		}
		return nil, fmt.Errorf("service/auth: looking up %q: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("failed login attempt", slog.String("username", username))
			return nil, apperror.Unauthorized(MessageCredentialsInvalid)
		}
		return nil, fmt.Errorf("service/auth: verifying password for %q: %w", username, err)
	}

	return user, nil
}

// Authenticate resolves an access token to its account.
// A missing or unknown token gives apperror.ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperror.Unauthorized(auth.MessagePleaseLogIn)
	}

	user, err := s.users.GetUserByAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(auth.MessagePleaseLogIn)
		}
		return nil, fmt.Errorf("service/auth: %w", err)
	}
	return user, nil
}
