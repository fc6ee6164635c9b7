package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"imara/config"
	"imara/cron"
	"imara/database"
	bookingRepoPkg "imara/database/repository/booking"
	businessRepoPkg "imara/database/repository/business"
	chatRepoPkg "imara/database/repository/chat"
	userRepoPkg "imara/database/repository/user"
	"imara/handlers"
	"imara/routes"
	"imara/services/booking"
	"imara/services/chat"
	"imara/services/media"
	"imara/services/notification"
	"imara/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	mediaService, err := media.NewCloudinaryMediaService()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize media service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	businessRepo := businessRepoPkg.NewMongoBusinessRepo()
	chatRepo := chatRepoPkg.NewMongoChatRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	reminderScheduler := cron.NewAsynqReminderScheduler()
	defer reminderScheduler.Close()

	notificationService, err := notification.NewDefaultNotificationService(userRepo, reminderScheduler)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	chatService := &chat.DefaultChatService{
		Repo:       chatRepo,
		Users:      userRepo,
		Businesses: businessRepo,
		Notifier:   notificationService,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:         bookingRepo,
		BusinessRepo: businessRepo,
		Chat:         chatService,
		Notifier:     notificationService,
	}

	// Run the reminder worker alongside the API server.
	cron.InitReminderWorker(notificationService, bookingRepo)

	handlerBundle := &handlers.HandlerBundle{
		Bookings:   bookingService,
		Chat:       chatService,
		Media:      mediaService,
		Businesses: businessRepo,
		Users:      userRepo,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
