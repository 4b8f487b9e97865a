package handler

import (
	"campusbridge/internal/delivery/http/middleware"
	"campusbridge/internal/pkg/response"
	"campusbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ListingHandler struct {
	uc usecase.ListingUsecase
}

func NewListingHandler(uc usecase.ListingUsecase) *ListingHandler {
	return &ListingHandler{uc: uc}
}

func (h *ListingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/:listing_id/publish", h.Publish)
}

// Publish makes a listing visible to the matching pool.
func (h *ListingHandler) Publish(c fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Publish(c.Context(), listingID); err != nil {
		return mapRecommendationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Listing published", fiber.Map{
		"listing_id": listingID,
	})
}
