package service

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"expense_tracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func newTestTokens(now func() time.Time) *TokenService {
	return NewTokenService(TokenConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Now:           now,
	})
}

func TestTokenService_AccessRoundTrip(t *testing.T) {
	t.Parallel()
	svc := newTestTokens(nil)

	tok, err := svc.IssueAccessToken(models.User{ID: 7, Username: "diana"})
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	claims, err := svc.VerifyAccessToken(tok)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "diana" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 15*time.Minute {
		t.Fatalf("access lifetime = %v, want 15m", got)
	}
}

func TestTokenService_RefreshRoundTrip(t *testing.T) {
	t.Parallel()
	svc := newTestTokens(nil)

	tok, err := svc.IssueRefreshToken(models.User{ID: 9, Username: "x"})
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	claims, err := svc.VerifyRefreshToken(tok)
	if err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
	if claims.UserID != 9 {
		t.Fatalf("userId = %d, want 9", claims.UserID)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 7*24*time.Hour {
		t.Fatalf("refresh lifetime = %v, want 168h", got)
	}
}

func TestTokenService_SameSecondTokensDiffer(t *testing.T) {
	t.Parallel()
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokens(func() time.Time { return fixed })
	u := models.User{ID: 1, Username: "u1"}

	a, _ := svc.IssueRefreshToken(u)
	b, _ := svc.IssueRefreshToken(u)
	if a == b {
		t.Fatalf("expected distinct refresh tokens for the same instant")
	}
}

func TestTokenService_SecretsAreNotInterchangeable(t *testing.T) {
	t.Parallel()
	svc := newTestTokens(nil)
	u := models.User{ID: 3, Username: "c"}

	access, _ := svc.IssueAccessToken(u)
	refresh, _ := svc.IssueRefreshToken(u)

	if _, err := svc.VerifyRefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
	if _, err := svc.VerifyAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
}

func TestTokenService_TypeClaimCheckedWithSharedSecret(t *testing.T) {
	t.Parallel()
	svc := NewTokenService(TokenConfig{AccessSecret: "same", RefreshSecret: "same"})

	refresh, _ := svc.IssueRefreshToken(models.User{ID: 1})
	if _, err := svc.VerifyAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()
	past := time.Now().Add(-2 * time.Hour)
	issuer := newTestTokens(func() time.Time { return past })
	verifier := newTestTokens(nil)

	tok, err := issuer.IssueAccessToken(models.User{ID: 11, Username: "old"})
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := verifier.VerifyAccessToken(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_RejectsBadTokens(t *testing.T) {
	t.Parallel()
	svc := newTestTokens(nil)
	now := time.Now()

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Type:   tokenTypeAccess,
		UserID: 5,
	}).SignedString([]byte("different-key"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &AccessClaims{
		Type:   tokenTypeAccess,
		UserID: 5,
	}).SignedString([]byte("test-access-secret"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}
	rs256, err := jwt.NewWithClaims(jwt.SigningMethodRS256, &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Type:   tokenTypeAccess,
		UserID: 12,
	}).SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	cases := map[string]string{
		"malformed":         "not-a-jwt",
		"empty":             "",
		"invalid signature": foreign,
		"missing exp":       noExp,
		"unexpected alg":    rs256,
	}
	for name, tok := range cases {
		if _, err := svc.VerifyAccessToken(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}
