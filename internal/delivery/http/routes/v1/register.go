package v1

import (
	"log"

	"campusbridge/internal/config"
	"campusbridge/internal/database"
	"campusbridge/internal/delivery/http/handler"
	"campusbridge/internal/delivery/http/middleware"
	"campusbridge/internal/domain/matching"
	"campusbridge/internal/infrastructure/cache"
	"campusbridge/internal/pkg/jwt"
	"campusbridge/internal/repository"
	"campusbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Register wires the v1 API: repositories over the shared DB, the signal
// registry for the configured profile, and role-gated route groups.
func Register(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, registry *matching.Registry, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	accountRepo := repository.NewPostgresAccountRepository(db)
	studentRepo := repository.NewPostgresStudentRepository(db)
	listingRepo := repository.NewPostgresListingRepository(db)

	var recCache usecase.RecommendationCache
	if redis != nil {
		recCache = redis
	}

	ranker := matching.NewRanker(registry, cfg.Match.Workers)

	authUC := usecase.NewAuthUsecase(accountRepo, jwtSvc)
	recUC := usecase.NewRecommendationUsecase(studentRepo, listingRepo, ranker, cfg.Match.Profile, recCache, cfg.Match.CacheTTL, logger)
	matchUC := usecase.NewMatchUsecase(studentRepo, listingRepo, registry)
	listingUC := usecase.NewListingUsecase(listingRepo, recCache, logger)

	authHandler := handler.NewAuthHandler(authUC)
	recHandler := handler.NewRecommendationHandler(recUC)
	matchHandler := handler.NewMatchHandler(matchUC)
	listingHandler := handler.NewListingHandler(listingUC)

	authHandler.RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", authMw.Middleware())

	studentOnly := protected.Group("", authMw.RequireRole(repository.RoleStudent))
	recHandler.RegisterStudentRoutes(studentOnly)
	matchHandler.RegisterRoutes(studentOnly.Group("/listings"))

	orgListings := protected.Group("/listings", authMw.RequireRole(repository.RoleOrganization))
	recHandler.RegisterListingRoutes(orgListings)
	listingHandler.RegisterRoutes(orgListings)
}
