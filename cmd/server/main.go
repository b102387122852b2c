package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "rentwheels-backend/internal/api/http"
	"rentwheels-backend/internal/config"
	"rentwheels-backend/internal/jobs"
	"rentwheels-backend/internal/logger"
	"rentwheels-backend/internal/push"
	"rentwheels-backend/internal/repository/postgres"
	"rentwheels-backend/internal/scheduler"
	"rentwheels-backend/internal/security"
	"rentwheels-backend/internal/service"
	"rentwheels-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentWheels backend", "address", cfg.GetServerAddress())

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	localStore, err := storage.NewLocalStore(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	pushSender, err := push.NewSender(context.Background(), cfg.FCM.CredentialsFile, cfg.FCM.ProjectID)
	if err != nil {
		log.Fatalf("Failed to initialize push sender: %v", err)
	}

	emailSvc := service.NewEmailService(cfg.SendGrid)
	noteSvc := service.NewNotificationService(store.NotificationRepository, store.UserRepository, pushSender)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository)
	bookingSvc := service.NewBookingService(store.BookingRepository, store.VehicleRepository, store.UserRepository, noteSvc, emailSvc)
	flowSvc := service.NewBookingFlowService(store.BookingFlowRepository, store.VehicleRepository, noteSvc)
	dashboardSvc := service.NewDashboardService(store.VehicleRepository, store.BookingRepository, store.BookingFlowRepository, store.UserRepository)
	documentSvc := service.NewDocumentService(localStore, cfg.Storage.MaxFileSizeMB)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Tokens:        tokenManager,
		Auth:          httpapi.NewAuthHandler(authSvc),
		Vehicles:      httpapi.NewVehicleHandler(vehicleSvc),
		Bookings:      httpapi.NewBookingHandler(bookingSvc),
		Flows:         httpapi.NewBookingFlowHandler(flowSvc, documentSvc, cfg.Storage.MaxFileSizeMB),
		Notifications: httpapi.NewNotificationHandler(noteSvc),
		Dashboard:     httpapi.NewDashboardHandler(dashboardSvc),
		UploadsDir:    localStore.Dir(),
	})

	jobRunner := jobs.NewJobRunner(store, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
}
