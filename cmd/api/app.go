package main

import (
	"context"
	"net/http"
	"time"

	"homeinsight-listings/internal/handlers"
	"homeinsight-listings/internal/middleware"
	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/repositories"
	"homeinsight-listings/internal/services"
	"homeinsight-listings/internal/transformers"
	"homeinsight-listings/internal/utils"
	"homeinsight-listings/pkg/cache"
	"homeinsight-listings/pkg/config"
	"homeinsight-listings/pkg/logger"
	"homeinsight-listings/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// App represents the application structure
type App struct {
	Config               *config.Config
	Router               *gin.Engine
	NormalizationHandler *handlers.NormalizationHandler
	PostcodeHandler      *handlers.PostcodeHandler
	RateLimiter          *middleware.RateLimiter
	Server               *http.Server

	redis     *redis.Client
	postcodes repositories.PostcodeRepository
	stop      context.CancelFunc
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	// Initialize infrastructure
	app.initializeMetrics()
	app.initializeRateLimiter()
	app.initializePostcodeSource()

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	ctx, cancel := context.WithCancel(context.Background())
	a.stop = cancel
	a.RateLimiter = middleware.PerMinute(a.Config.RateLimit.PerMinute, a.Config.RateLimit.Burst)
	go a.RateLimiter.Cleanup(ctx, time.Minute)
}

// choose where postcode tables are read from
func (a *App) initializePostcodeSource() {
	if a.Config.Postcodes.Source != config.PostcodeSourceRedis {
		a.postcodes = repositories.NewFilePostcodeRepository(a.Config.PostcodesTemplate())
		return
	}

	client, err := cache.Connect(context.Background(), cache.RedisConfigFrom(a.Config))
	if err != nil {
		logger.L().Fatalf("Failed to initialize Redis: %v", err)
	}
	a.redis = client
	a.postcodes = repositories.NewRedisPostcodeRepository(cache.NewStore(client))
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	labels, err := models.ParseLabelMapping(a.Config.Taxonomy.LabelMapping)
	if err != nil {
		logger.L().Fatalf("Invalid taxonomy config: %v", err)
	}

	// services
	directory := services.NewPostcodeDirectory(a.postcodes)
	err = directory.Preload(context.Background(), models.CountryAustralia)
	if utils.IsRetryableError(err) {
		time.Sleep(time.Second)
		err = directory.Preload(context.Background(), models.CountryAustralia)
	}
	if err != nil {
		// Lookups retry the load on first use.
		logger.L().Errorf("Failed to preload postcodes: %v", err)
	}

	// transformers
	addresses := transformers.NewAddressTransformer()
	assembler := transformers.NewListingTransformer(addresses, models.CountryAustralia, labels)
	listings := services.NewListingService(assembler, a.Config.Ingest.Workers)

	// handlers
	a.NormalizationHandler = handlers.NewNormalizationHandler(addresses, directory, listings, labels)
	a.PostcodeHandler = handlers.NewPostcodeHandler(directory)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	if a.stop != nil {
		a.stop()
	}
	cache.Close(a.redis)
}
