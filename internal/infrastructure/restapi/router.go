package restapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"wallet_networks/internal/config"
	"wallet_networks/internal/pkg/metrics"
)

// SetupRouter configures and returns the Gin engine.
func SetupRouter(handler *NetworkHandler, metricsCfg config.MetricsConfig, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))
	router.Use(zapLoggerMiddleware(logger.Named("http")))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/networks", handler.ListNetworks)
		v1.GET("/networks/:chainId", handler.GetNetwork)
		v1.GET("/networks/:chainId/explorer/address/:address", handler.GetAddressURL)
		v1.GET("/networks/:chainId/explorer/tx/:hash", handler.GetTxURL)
		v1.GET("/networks/:chainId/prices", handler.GetTokenPrices)
		v1.GET("/networks/:chainId/base-asset/price", handler.GetBaseAssetPrice)
		v1.GET("/base-assets/price", handler.GetBaseAssetPriceByName)
	}

	if metricsCfg.Enabled {
		router.GET(metricsCfg.Path, gin.WrapH(promhttp.Handler()))
		logger.Info("Prometheus metrics endpoint enabled", zap.String("path", metricsCfg.Path))
	}

	return router
}

// zapLoggerMiddleware logs each request and counts it by route and status.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()

		logger.Debug("Request served",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIP", c.ClientIP()),
		)
	}
}
