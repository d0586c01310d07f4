package main

import (
	"context"
	"net/http"
	"time"

	"homeinsight-listings/pkg/cache"
	"homeinsight-listings/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupHealthCheck()
	a.setupAPIRoutes()

	// Expose Prometheus metrics endpoint
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupHealthCheck configures health check endpoint
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		if a.redis == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "postcodes": a.Config.Postcodes.Source})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := cache.NewStore(a.redis).Ping(ctx); err != nil {
			logger.L().Printf("Redis ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "Redis unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok", "postcodes": a.Config.Postcodes.Source})
	})
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		api.POST("/addresses/parse", a.NormalizationHandler.ParseAddress)
		api.POST("/addresses/validate", a.NormalizationHandler.ValidateAddress)
		api.POST("/market-info/parse", a.NormalizationHandler.ParseMarketInfo)
		api.POST("/property-types/parse", a.NormalizationHandler.ParsePropertyType)
		api.POST("/listings/normalize", a.NormalizationHandler.NormalizeListings)
		api.GET("/listing-url", a.NormalizationHandler.ListingURL)

		postcodes := api.Group("/postcodes/:country")
		{
			postcodes.GET("/suburb/:suburb", a.PostcodeHandler.FindPostcode)
			postcodes.GET("/postcode/:postcode", a.PostcodeHandler.FindSuburb)
		}
	}
}
