package handler

import (
	"errors"

	"campusbridge/internal/delivery/http/dto"
	"campusbridge/internal/delivery/http/middleware"
	"campusbridge/internal/pkg/response"
	"campusbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	acct, access, refresh, err := h.uc.Login(c.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, "Login successful", dto.LoginResponse{
		AccountID: acct.ID,
		Role:      acct.Role,
		TokenPairResponse: dto.TokenPairResponse{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	})
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return mapAuthError(err)
	}

	return response.Success(c, fiber.StatusOK, "Token refreshed", dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken), errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
