package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHMACService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	accountID := uuid.New()

	tok, err := svc.GenerateAccessToken(accountID, "student")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AccountID != accountID {
		t.Fatalf("account id = %v, want %v", claims.AccountID, accountID)
	}
	if claims.Role != "student" || claims.TokenType != TokenTypeAccess {
		t.Fatalf("claims = %+v", claims)
	}
	if svc.IsRefreshToken(claims) {
		t.Fatalf("access token classified as refresh")
	}
}

func TestHMACService_RefreshTokenType(t *testing.T) {
	svc := NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)

	tok, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatalf("expected refresh token type, got %q", claims.TokenType)
	}
}

func TestHMACService_ExpiredToken(t *testing.T) {
	svc := NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	tok, err := svc.GenerateAccessToken(uuid.New(), "student")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	svc := NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	other := NewHMACService("x-secret", "y-secret", time.Minute, time.Hour)

	tok, err := svc.GenerateAccessToken(uuid.New(), "student")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
