package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelnest/internal/config"
	"travelnest/internal/database"
	"travelnest/internal/middleware"
	"travelnest/internal/modules/auth"
	"travelnest/internal/modules/booking"
	"travelnest/internal/modules/listing"
	"travelnest/internal/modules/review"
	jwtsvc "travelnest/internal/pkg/jwt"
	"travelnest/internal/pkg/logger"
	"travelnest/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.ErrorLogger.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.ErrorLogger.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		logger.ErrorLogger.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	listingService := listing.NewService(listingRepo, bookingRepo, reviewRepo)
	listingHandler := listing.NewHandler(listingService, userRepo)

	bookingService := booking.NewService(bookingRepo, listingRepo, reviewRepo)
	bookingHandler := booking.NewHandler(bookingService, userRepo)

	reviewService := review.NewService(reviewRepo, listingRepo)
	reviewHandler := review.NewHandler(reviewService, userRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		listingHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			listingHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
		}
	}

	logger.InfoLogger.Info("Listening on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.ErrorLogger.Fatal(err)
	}
}
