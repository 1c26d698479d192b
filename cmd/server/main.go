package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pawhub/pawhub-server/internal/clients/breeds"
	"github.com/pawhub/pawhub-server/internal/config"
	"github.com/pawhub/pawhub-server/internal/database"
	"github.com/pawhub/pawhub-server/internal/handlers"
	"github.com/pawhub/pawhub-server/internal/repository"
	cron "github.com/pawhub/pawhub-server/internal/scheduler"
	"github.com/pawhub/pawhub-server/internal/services"
	"github.com/pawhub/pawhub-server/pkg/logger"
	"github.com/pawhub/pawhub-server/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	formRepo := repository.NewAdoptFormRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	guideRepo := repository.NewGuideRepository(db)
	txn := repository.NewTxnRunner(db)

	// --- Services ---
	userService := services.NewUserService(userRepo, petRepo)
	petService := services.NewPetService(petRepo, notificationRepo)
	formService := services.NewAdoptFormService(formRepo, petRepo, chatRepo, userRepo, notificationRepo)
	workflowService := services.NewWorkflowService(chatRepo, petRepo, formRepo, messageRepo, userRepo, blockRepo, notificationRepo, reviewRepo, txn)
	chatService := services.NewChatService(chatRepo, userRepo, petRepo)
	messageService := services.NewMessageService(messageRepo, chatRepo, userRepo, blockRepo, notificationRepo)
	blockService := services.NewBlockService(blockRepo, chatRepo, messageRepo, userRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	reviewService := services.NewReviewService(reviewRepo)
	guideService := services.NewGuideService(guideRepo)

	breedClient := breeds.NewClient(cfg.BreedAPIURL, 15*time.Second)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	petHandler := handlers.NewPetHandler(petService, breedClient)
	formHandler := handlers.NewAdoptFormHandler(formService)
	chatHandler := handlers.NewChatHandler(workflowService, chatService)
	messageHandler := handlers.NewMessageHandler(messageService)
	blockHandler := handlers.NewBlockHandler(blockService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	guideHandler := handlers.NewGuideHandler(guideService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/users/verify", userHandler.VerifyEmailHandler).Methods("GET")
	router.HandleFunc("/pets", petHandler.ListPetsHandler).Methods("GET")
	router.HandleFunc("/pets/{id:[a-f0-9]{24}}", petHandler.GetPetHandler).Methods("GET")
	router.HandleFunc("/guides", guideHandler.ListGuidesHandler).Methods("GET")
	router.HandleFunc("/guides/{id}", guideHandler.GetGuideHandler).Methods("GET")
	router.HandleFunc("/reviews/pet/{petId}", reviewHandler.ReviewsByPetHandler).Methods("GET")

	// Protected user routes
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/block", blockHandler.BlockUserHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/unblock", blockHandler.UnblockUserHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/wishlist", userHandler.GetWishlistHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/wishlist/{petId}", userHandler.AddToWishlistHandler).Methods("POST")
	protectedUserRoutes.HandleFunc("/wishlist/{petId}", userHandler.RemoveFromWishlistHandler).Methods("DELETE")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.GetUserHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.UpdateUserHandler).Methods("PATCH")
	protectedUserRoutes.HandleFunc("/{id}", userHandler.DeleteUserHandler).Methods("DELETE")

	// Pet routes
	protectedPetRoutes := router.PathPrefix("/pets").Subrouter()
	protectedPetRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedPetRoutes.HandleFunc("", petHandler.SubmitPetHandler).Methods("POST")
	protectedPetRoutes.HandleFunc("/mine", petHandler.MyPetsHandler).Methods("GET")
	protectedPetRoutes.HandleFunc("/predict-breed", petHandler.PredictBreedHandler).Methods("POST")

	// Adopt form routes
	protectedFormRoutes := router.PathPrefix("/adopt-forms").Subrouter()
	protectedFormRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedFormRoutes.HandleFunc("", formHandler.SubmitFormHandler).Methods("POST")
	protectedFormRoutes.HandleFunc("/mine", formHandler.MyFormsHandler).Methods("GET")
	protectedFormRoutes.HandleFunc("/pet/{petId}", formHandler.FormsByPetHandler).Methods("GET")

	// Chat and workflow routes
	protectedChatRoutes := router.PathPrefix("/chats").Subrouter()
	protectedChatRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedChatRoutes.HandleFunc("/update-status", chatHandler.UpdateStatusHandler).Methods("POST")
	protectedChatRoutes.HandleFunc("/adopter-chat-list/{userId}", chatHandler.AdopterChatListHandler).Methods("GET")
	protectedChatRoutes.HandleFunc("/adoptee-chat-list/{userId}", chatHandler.AdopteeChatListHandler).Methods("GET")
	protectedChatRoutes.HandleFunc("/messages", messageHandler.SendMessageHandler).Methods("POST")

	// Message transcript
	protectedMessageRoutes := router.PathPrefix("/messages").Subrouter()
	protectedMessageRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedMessageRoutes.HandleFunc("/{chatId}", messageHandler.ListMessagesHandler).Methods("GET")

	// Notification routes
	protectedNotificationRoutes := router.PathPrefix("/notifications").Subrouter()
	protectedNotificationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedNotificationRoutes.HandleFunc("", notificationHandler.GetUserNotificationsHandler).Methods("GET")
	protectedNotificationRoutes.HandleFunc("/read-all", notificationHandler.MarkAllAsReadHandler).Methods("POST")

	// Review replies
	protectedReviewRoutes := router.PathPrefix("/reviews").Subrouter()
	protectedReviewRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedReviewRoutes.HandleFunc("/{id}/reply", reviewHandler.ReplyHandler).Methods("POST")

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/users", userHandler.AdminGetAllUsersHandler).Methods("GET")
	adminRoutes.HandleFunc("/pets/pending", petHandler.PendingPetsHandler).Methods("GET")
	adminRoutes.HandleFunc("/pets/{id}/approve", petHandler.ApprovePetHandler).Methods("POST")
	adminRoutes.HandleFunc("/pets/{id}/reject", petHandler.RejectPetHandler).Methods("POST")
	adminRoutes.HandleFunc("/adopt-forms/{id}/approve", formHandler.ApproveFormHandler).Methods("POST")
	adminRoutes.HandleFunc("/adopt-forms/{id}/reject", formHandler.RejectFormHandler).Methods("POST")
	adminRoutes.HandleFunc("/guides", guideHandler.CreateGuideHandler).Methods("POST")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Cleanup of expired notifications
	cron.StartNotificationCronJobs(notificationService)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
