package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/example/carhub/internal/api"
	"github.com/example/carhub/internal/config"
	"github.com/example/carhub/internal/core"
	"github.com/example/carhub/internal/db"
	"github.com/example/carhub/internal/firebase"
	"github.com/example/carhub/internal/metrics"
	"github.com/example/carhub/internal/middleware"
)

func newLogger(release bool) (*zap.Logger, error) {
	if release {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	// In production, environment variables are set directly.
	if os.Getenv("GIN_MODE") != gin.ReleaseMode {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Error loading .env file:", err)
		}
	}

	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	zapLogger, err := newLogger(appConfig.IsRelease())
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Application configuration loaded", zap.String("port", appConfig.Port))

	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	clients, err := firebase.InitFirebase(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	defer func() {
		if err := clients.Close(); err != nil {
			zapLogger.Warn("Failed to close Firestore client", zap.Error(err))
		}
	}()

	userRepo := db.NewFirestoreUserRepository(clients.Firestore, db.SystemClock)
	interestRepo := db.NewFirestoreInterestRepository(clients.Firestore, db.SystemClock)
	testDriveRepo := db.NewFirestoreTestDriveRepository(clients.Firestore, db.SystemClock)

	userService := core.NewUserService(userRepo, zapLogger)
	interestService := core.NewInterestService(interestRepo, zapLogger)
	testDriveService := core.NewTestDriveService(testDriveRepo, zapLogger)

	if appConfig.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	appMetrics := metrics.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.MetricsMiddleware(appMetrics))
	if origins := appConfig.ClientOrigins(); len(origins) > 0 {
		router.Use(middleware.CORSMiddleware(origins))
		zapLogger.Info("CORS Middleware enabled", zap.Strings("origins", origins))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured.")
	}

	api.SetupRoutes(
		router,
		appConfig,
		zapLogger,
		clients.Auth,
		appMetrics,
		userService,
		interestService,
		testDriveService,
	)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	serverErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quitChannel:
		zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serverErr:
		zapLogger.Error("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
