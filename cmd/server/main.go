package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fpl-analytics/fpl-analyzer/internal/api"
	"github.com/fpl-analytics/fpl-analyzer/internal/api/middleware"
	"github.com/fpl-analytics/fpl-analyzer/internal/models"
	"github.com/fpl-analytics/fpl-analyzer/internal/optimizer"
	"github.com/fpl-analytics/fpl-analyzer/internal/predictor"
	"github.com/fpl-analytics/fpl-analyzer/internal/providers"
	"github.com/fpl-analytics/fpl-analyzer/internal/services"
	"github.com/fpl-analytics/fpl-analyzer/pkg/config"
	"github.com/fpl-analytics/fpl-analyzer/pkg/database"
	"github.com/fpl-analytics/fpl-analyzer/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.Player{}, &models.Prediction{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Model parameters, with config overrides
	params := predictor.DefaultParams()
	if cfg.FormWindow > 0 {
		params.FormWindow = cfg.FormWindow
	}
	if cfg.RecentFormWeight > 0 {
		params.RecentWeight = cfg.RecentFormWeight
		params.SeasonWeight = 1 - cfg.RecentFormWeight
	}
	if cfg.HomeAdvantage > 0 {
		params.HomeAdvantage = cfg.HomeAdvantage
	}
	if cfg.PricePenalty > 0 {
		params.PricePenalty = cfg.PricePenalty
	}

	var strategy predictor.ScoringStrategy
	switch cfg.ScoringStrategy {
	case "regression":
		strategy = predictor.NewRegressionStrategy(params)
	default:
		strategy = predictor.NewRuleBasedStrategy(params)
	}
	log.Infof("Using %s scoring strategy", cfg.ScoringStrategy)

	// Initialize services
	cacheService := services.NewCacheService(redisClient)
	playerStore := services.NewPlayerStore(db)
	predictionStore := services.NewPredictionStore(db)

	fplClient := providers.NewFPLClient(providers.FPLClientConfig{
		BaseURL:          cfg.FPLBaseURL,
		Timeout:          cfg.FPLTimeout,
		RequestsPerSec:   cfg.FPLRateLimit,
		BreakerThreshold: cfg.CircuitBreakerThreshold,
	}, log)

	engine := predictor.NewEngine(params, strategy, log)
	predictionService := services.NewPredictionService(engine, strategy, playerStore, predictionStore, cacheService, log, cfg.PredictionWorkers)
	transferOptimizer := optimizer.NewOptimizer(params.PricePenalty, log)

	// Parse fetch interval
	fetchInterval, err := time.ParseDuration(cfg.DataFetchInterval)
	if err != nil {
		log.Warnf("Invalid fetch interval, using default 2h: %v", err)
		fetchInterval = 2 * time.Hour
	}
	retention, err := time.ParseDuration(cfg.PredictionRetention)
	if err != nil {
		log.Warnf("Invalid prediction retention, using default 720h: %v", err)
		retention = 720 * time.Hour
	}

	refreshService := services.NewRefreshService(fplClient, playerStore, predictionStore, cacheService, log, fetchInterval, retention)
	if cfg.EnableBackgroundJobs {
		if err := refreshService.Start(); err != nil {
			log.Errorf("Failed to start refresh service: %v", err)
		}
		defer refreshService.Stop()
	}

	analyzer := services.NewTeamAnalyzer(fplClient, refreshService, predictionService, playerStore, predictionStore, cacheService, transferOptimizer, log, cfg.MaxPlayersPerTeam)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, cfg, api.Dependencies{
		Players:     playerStore,
		Predictions: predictionStore,
		Prediction:  predictionService,
		Refresh:     refreshService,
		Analyzer:    analyzer,
		Optimizer:   transferOptimizer,
		Cache:       cacheService,
		Logger:      log,
	})

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
