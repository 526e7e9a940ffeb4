package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"servicehub/internal/database"
	"servicehub/internal/middleware"
	"servicehub/internal/modules/analytics"
	"servicehub/internal/modules/auth"
	"servicehub/internal/modules/booking"
	"servicehub/internal/modules/catalog"
	"servicehub/internal/modules/favorite"
	"servicehub/internal/modules/review"
	jwtsvc "servicehub/internal/pkg/jwt"
	"servicehub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	catalogHandler := catalog.NewHandler(catalog.NewService(serviceRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, serviceRepo))
	reviewHandler := review.NewHandler(review.NewService(serviceRepo, bookingRepo))
	analyticsHandler := analytics.NewHandler(analytics.NewService(serviceRepo, bookingRepo))
	favoriteHandler := favorite.NewHandler(favorite.NewService(favoriteRepo, serviceRepo))

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			catalogHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			favoriteHandler.RegisterRoutes(protected)
			analyticsHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
