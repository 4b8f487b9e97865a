package handler

import (
	"campusbridge/internal/delivery/http/dto"
	"campusbridge/internal/delivery/http/middleware"
	"campusbridge/internal/pkg/response"
	"campusbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:listing_id/match", h.GetMatch)
}

// GetMatch explains how the authenticated student scores against one listing.
func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	accountID, ok := middleware.AccountIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.CalculateMatch(c.Context(), accountID, listingID)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResultResponse(res))
}
