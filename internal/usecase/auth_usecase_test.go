package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"campusbridge/internal/pkg/jwt"
	"campusbridge/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type mockAccountRepo struct {
	acct repository.Account
	err  error
}

func (m mockAccountRepo) FindByEmail(context.Context, string) (repository.Account, error) {
	if m.err != nil {
		return repository.Account{}, m.err
	}
	return m.acct, nil
}

func (m mockAccountRepo) FindByID(context.Context, uuid.UUID) (repository.Account, error) {
	if m.err != nil {
		return repository.Account{}, m.err
	}
	return m.acct, nil
}

func newTestJWT() jwt.Service {
	return jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func hashPassword(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func TestAuthLogin_Success(t *testing.T) {
	acct := repository.Account{
		ID:           uuid.New(),
		Email:        "student@example.edu",
		PasswordHash: hashPassword(t, "correct horse"),
		Role:         repository.RoleStudent,
	}
	uc := NewAuthUsecase(mockAccountRepo{acct: acct}, newTestJWT())

	got, access, refresh, err := uc.Login(context.Background(), LoginInput{
		Email:    "Student@Example.edu",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.ID != acct.ID {
		t.Fatalf("unexpected account returned")
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected both tokens")
	}
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	acct := repository.Account{
		ID:           uuid.New(),
		PasswordHash: hashPassword(t, "correct horse"),
		Role:         repository.RoleStudent,
	}
	uc := NewAuthUsecase(mockAccountRepo{acct: acct}, newTestJWT())

	_, _, _, err := uc.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthLogin_UnknownAccount(t *testing.T) {
	uc := NewAuthUsecase(mockAccountRepo{err: repository.ErrAccountNotFound}, newTestJWT())
	_, _, _, err := uc.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "pw"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthRefresh_RotatesTokens(t *testing.T) {
	acct := repository.Account{ID: uuid.New(), Role: repository.RoleOrganization}
	jwtSvc := newTestJWT()
	uc := NewAuthUsecase(mockAccountRepo{acct: acct}, jwtSvc)

	refresh, err := jwtSvc.GenerateRefreshToken(acct.ID)
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}

	access, newRefresh, err := uc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if access == "" || newRefresh == "" {
		t.Fatalf("expected rotated token pair")
	}

	claims, err := jwtSvc.ValidateToken(access)
	if err != nil {
		t.Fatalf("new access token invalid: %v", err)
	}
	if claims.AccountID != acct.ID || claims.Role != repository.RoleOrganization {
		t.Fatalf("access claims = %+v", claims)
	}
}

func TestAuthRefresh_RejectsAccessToken(t *testing.T) {
	acct := repository.Account{ID: uuid.New(), Role: repository.RoleStudent}
	jwtSvc := newTestJWT()
	uc := NewAuthUsecase(mockAccountRepo{acct: acct}, jwtSvc)

	access, err := jwtSvc.GenerateAccessToken(acct.ID, acct.Role)
	if err != nil {
		t.Fatalf("generate access: %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}
