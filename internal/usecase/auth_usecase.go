package usecase

import (
	"context"
	"errors"
	"strings"

	"campusbridge/internal/pkg/jwt"
	"campusbridge/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase interface {
	Login(ctx context.Context, in LoginInput) (repository.Account, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	accounts repository.AccountRepository
	jwt      jwt.Service
}

func NewAuthUsecase(accounts repository.AccountRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{accounts: accounts, jwt: jwtSvc}
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (repository.Account, string, string, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return repository.Account{}, "", "", ErrInvalidCredentials
	}

	acct, err := u.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return repository.Account{}, "", "", ErrInvalidCredentials
		}
		return repository.Account{}, "", "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(in.Password)); err != nil {
		return repository.Account{}, "", "", ErrInvalidCredentials
	}

	access, err := u.jwt.GenerateAccessToken(acct.ID, acct.Role)
	if err != nil {
		return repository.Account{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(acct.ID)
	if err != nil {
		return repository.Account{}, "", "", ErrInternal
	}

	return acct, access, refresh, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	acct, err := u.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	access, err := u.jwt.GenerateAccessToken(acct.ID, acct.Role)
	if err != nil {
		return "", "", ErrInternal
	}
	newRefresh, err := u.jwt.GenerateRefreshToken(acct.ID)
	if err != nil {
		return "", "", ErrInternal
	}

	return access, newRefresh, nil
}
