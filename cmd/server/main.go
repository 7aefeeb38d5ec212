package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/edupulse/assessment-portal/internal/cache"
	"github.com/edupulse/assessment-portal/internal/config"
	"github.com/edupulse/assessment-portal/internal/handlers"
	"github.com/edupulse/assessment-portal/internal/repositories/postgres"
	"github.com/edupulse/assessment-portal/internal/services"
	"github.com/edupulse/assessment-portal/internal/utils"
	"github.com/edupulse/assessment-portal/internal/validator"
	"github.com/edupulse/assessment-portal/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	casdoorsdk.InitConfig(
		cfg.Casdoor.Endpoint,
		cfg.Casdoor.ClientID,
		cfg.Casdoor.ClientSecret,
		cfg.Casdoor.Certificate,
		cfg.Casdoor.OrganizationName,
		cfg.Casdoor.ApplicationName,
	)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Database initialization failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Redis initialization failed", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(utils.ToSlogLogger(logger))
	if err != nil {
		logger.Error("Event publisher initialization failed", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	cacheService := cache.NewRedisCache(redisClient, logger)
	v := validator.New()

	statsService := services.NewStatsService(repo, logger, cfg.AttentionThreshold)
	assessmentService := services.NewAssessmentService(repo, logger, v)
	attemptService := services.NewAttemptService(repo, logger, v, statsService, cacheService, publisher)
	analyticsService := services.NewAnalyticsService(repo, logger, statsService, cacheService, cfg.AttentionThreshold)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(repo, assessmentService, attemptService, analyticsService, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
