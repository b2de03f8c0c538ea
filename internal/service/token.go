package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"expense_tracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken covers every verification failure: malformed, bad signature, expired, wrong type.
var ErrInvalidToken = errors.New("invalid token")

// TokenConfig is built once at startup and handed to NewTokenService.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Now           func() time.Time
}

// AccessClaims identify the caller on protected routes.
type AccessClaims struct {
	jwt.RegisteredClaims
	Type     string `json:"typ"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// RefreshClaims only name the user; the store decides whether the token is still live.
type RefreshClaims struct {
	jwt.RegisteredClaims
	Type   string `json:"typ"`
	UserID int64  `json:"userId"`
}

type TokenService struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	now        func() time.Time
}

func NewTokenService(cfg TokenConfig) *TokenService {
	s := &TokenService{
		accessKey:  []byte(cfg.AccessSecret),
		refreshKey: []byte(cfg.RefreshSecret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		issuer:     cfg.Issuer,
		now:        cfg.Now,
	}
	if s.accessTTL <= 0 {
		s.accessTTL = DefaultAccessTTL
	}
	if s.refreshTTL <= 0 {
		s.refreshTTL = DefaultRefreshTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *TokenService) IssueAccessToken(u models.User) (string, error) {
	claims := &AccessClaims{
		RegisteredClaims: s.registered(u.ID, s.accessTTL),
		Type:             tokenTypeAccess,
		UserID:           u.ID,
		Username:         u.Username,
	}
	return s.sign(claims, s.accessKey)
}

func (s *TokenService) IssueRefreshToken(u models.User) (string, error) {
	claims := &RefreshClaims{
		RegisteredClaims: s.registered(u.ID, s.refreshTTL),
		Type:             tokenTypeRefresh,
		UserID:           u.ID,
	}
	return s.sign(claims, s.refreshKey)
}

func (s *TokenService) VerifyAccessToken(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(token, claims, s.accessKey); err != nil {
		return nil, err
	}
	if claims.Type != tokenTypeAccess {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) VerifyRefreshToken(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.parse(token, claims, s.refreshKey); err != nil {
		return nil, err
	}
	if claims.Type != tokenTypeRefresh {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// registered fills exp/iat/jti. The random jti keeps tokens issued in the same second distinct.
func (s *TokenService) registered(userID int64, ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (s *TokenService) sign(claims jwt.Claims, key []byte) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) parse(token string, claims jwt.Claims, key []byte) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}
