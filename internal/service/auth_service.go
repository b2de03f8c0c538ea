package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const passwordHashCost = 10

// Client-visible auth messages.
const (
	msgAllFieldsRequired   = "All fields are required"
	msgUserExists          = "Username or email already exists"
	msgCredentialsRequired = "Username and password are required"
	msgInvalidCredentials  = "Invalid credentials"
	msgRefreshRequired     = "Refresh token is required"
	msgRefreshExpired      = "Invalid or expired refresh token"
	msgRefreshRevoked      = "Invalid refresh token"
)

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService handles the session lifecycle: one live refresh token per user.
type AuthService struct {
	users  repository.Users
	tokens *TokenService
	now    func() time.Time
}

func NewAuthService(users repository.Users, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens, now: time.Now}
}

// Register creates a user. No tokens are issued.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || strings.TrimSpace(in.Password) == "" {
		return models.User{}, newError(ErrValidation, msgAllFieldsRequired, nil)
	}

	existing, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, newError(ErrConflict, msgUserExists, nil)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, newError(ErrConflict, msgUserExists, err)
		}
		return models.User{}, err
	}
	u.ID = id
	return u, nil
}

// Login checks credentials and starts a new session, revoking any previous refresh token.
func (s *AuthService) Login(ctx context.Context, username, password string) (TokenPair, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return TokenPair{}, newError(ErrValidation, msgCredentialsRequired, nil)
	}

	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return TokenPair{}, err
	}
	if u == nil {
		// burn a comparison so unknown users cost the same as wrong passwords
		_ = verifyPassword(dummyHash(), password)
		return TokenPair{}, newError(ErrUnauthorized, msgInvalidCredentials, nil)
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return TokenPair{}, newError(ErrUnauthorized, msgInvalidCredentials, nil)
		}
		return TokenPair{}, fmt.Errorf("verify password for user %d: %w", u.ID, err)
	}

	pair, err := s.issuePair(*u)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.users.SetRefreshToken(ctx, u.ID, pair.RefreshToken); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// Refresh rotates both tokens. Every failure is Forbidden; the cause stays in Err.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, newError(ErrValidation, msgRefreshRequired, nil)
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, newError(ErrForbidden, msgRefreshExpired, err)
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, newError(ErrForbidden, msgRefreshExpired, err)
	}
	if u == nil || u.RefreshToken != refreshToken {
		return TokenPair{}, newError(ErrForbidden, msgRefreshRevoked, nil)
	}

	pair, err := s.issuePair(*u)
	if err != nil {
		return TokenPair{}, newError(ErrForbidden, msgRefreshExpired, err)
	}

	// The swap only lands if nobody rotated or cleared the token since the read above.
	rotated, err := s.users.RotateRefreshToken(ctx, u.ID, refreshToken, pair.RefreshToken)
	if err != nil {
		return TokenPair{}, newError(ErrForbidden, msgRefreshExpired, err)
	}
	if !rotated {
		return TokenPair{}, newError(ErrForbidden, msgRefreshRevoked, nil)
	}
	return pair, nil
}

// Logout clears whichever session holds refreshToken. Unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return newError(ErrValidation, msgRefreshRequired, nil)
	}
	if _, err := s.users.ClearRefreshToken(ctx, refreshToken); err != nil {
		return err
	}
	return nil
}

// VerifyAccessToken is the middleware's entry point.
func (s *AuthService) VerifyAccessToken(token string) (*AccessClaims, error) {
	return s.tokens.VerifyAccessToken(token)
}

func (s *AuthService) issuePair(u models.User) (TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(u)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefreshToken(u)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
