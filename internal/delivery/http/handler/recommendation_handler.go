package handler

import (
	"errors"
	"strconv"

	"campusbridge/internal/delivery/http/dto"
	"campusbridge/internal/delivery/http/middleware"
	"campusbridge/internal/pkg/response"
	"campusbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

// RegisterStudentRoutes mounts the student-facing feed.
func (h *RecommendationHandler) RegisterStudentRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/recommendations", h.GetForStudent)
}

// RegisterListingRoutes mounts the sponsor-facing candidate view.
func (h *RecommendationHandler) RegisterListingRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:listing_id/candidates", h.GetForListing)
}

// GetForStudent ranks eligible listings for the authenticated student.
func (h *RecommendationHandler) GetForStudent(c fiber.Ctx) error {
	accountID, ok := middleware.AccountIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	params, err := paginationFromQuery(c)
	if err != nil {
		return err
	}

	page, err := h.uc.ForStudent(c.Context(), accountID, params)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendationListResponse(page))
}

// GetForListing ranks eligible student candidates for a listing.
func (h *RecommendationHandler) GetForListing(c fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	params, err := paginationFromQuery(c)
	if err != nil {
		return err
	}

	page, err := h.uc.ForListing(c.Context(), listingID, params)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRecommendationListResponse(page))
}

// paginationFromQuery parses limit/offset without clamping: out-of-range
// values surface as 400s so callers see their mistake.
func paginationFromQuery(c fiber.Ctx) (usecase.RecommendationParams, error) {
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return usecase.RecommendationParams{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return usecase.RecommendationParams{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
	}
	return usecase.RecommendationParams{Limit: limit, Offset: offset}, nil
}

func queryInt(c fiber.Ctx, key string, def int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func mapRecommendationUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid pagination", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrStudentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Student not found", nil, err)
	case errors.Is(err, usecase.ErrListingNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Listing not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
