package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mavina/internal/config"
	"mavina/internal/database"
	"mavina/internal/middleware"
	"mavina/internal/modules/appointment"
	"mavina/internal/modules/auth"
	"mavina/internal/modules/chat"
	"mavina/internal/modules/transaction"
	jwtsvc "mavina/internal/pkg/jwt"
	"mavina/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	appointmentService := appointment.NewService(appointmentRepo, userRepo, cfg.CancelLeadTime)
	appointmentHandler := appointment.NewHandler(appointmentService)

	transactionService := transaction.NewService(transactionRepo, appointmentRepo)
	transactionHandler := transaction.NewHandler(transactionService)

	hub := chat.NewHub()
	chatService := chat.NewService(appointmentRepo, hub)
	chatHandler := chat.NewHandler(chatService, hub, j)

	r := gin.Default()
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		chatHandler.RegisterWSRoute(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			appointmentHandler.RegisterRoutes(protected)
			transactionHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
