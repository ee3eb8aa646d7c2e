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

	"wanderlust-backend/internal/api"
	"wanderlust-backend/internal/config"
	"wanderlust-backend/internal/core"
	"wanderlust-backend/internal/db"
	"wanderlust-backend/internal/firebase"
	"wanderlust-backend/internal/middleware"
)

func main() {
	// .env is a development convenience; release deployments set the environment directly.
	if os.Getenv("GIN_MODE") != gin.ReleaseMode {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file loaded:", err)
		}
	}

	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	zapLogger, err := newLogger(appConfig)
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()

	store, closeStore, err := openStore(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to open the document store", zap.Error(err))
	}

	authClient, err := firebase.NewAuthClient(initCtx, appConfig.FirebaseServiceKey, appConfig.FirebaseProjectID)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Auth", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK initialized.")

	services := core.NewServices(store, time.Now)

	if appConfig.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware(appConfig.ClientURL))
	zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))

	api.SetupRoutes(router, services, authClient, zapLogger)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := closeStore(shutdownCtx); err != nil {
		zapLogger.Error("Failed to disconnect from MongoDB", zap.Error(err))
	}
	zapLogger.Info("Server exiting gracefully.")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsRelease() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// openStore returns the configured store and a function that releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*db.Store, func(context.Context) error, error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("Using the in-memory store; data is lost on restart.")
		return db.NewMemoryStore(cfg.EnsureIndexes), func(context.Context) error { return nil }, nil
	}

	client, err := db.Connect(ctx, cfg.MongoConnectionURI(), logger)
	if err != nil {
		return nil, nil, err
	}
	database := client.Database(cfg.DBName)
	if cfg.EnsureIndexes {
		db.EnsureIndexes(ctx, database, logger)
	}
	logger.Info("MongoDB store ready", zap.String("database", cfg.DBName))
	return db.NewMongoStore(database), client.Disconnect, nil
}
