package restapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// RouterOptions holds the optional parts of the HTTP surface.
type RouterOptions struct {
	AllowedOrigins []string
	AccessLog      *zap.Logger
	Metrics        http.Handler

	SwaggerEnabled  bool
	SwaggerPath     string
	SwaggerSpecFile string
}

// SetupRouter builds the gin engine serving the wallet configuration API.
func SetupRouter(handler *WalletConfigHandler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	if opts.AccessLog != nil {
		router.Use(ZapLoggerMiddleware(opts.AccessLog))
	}
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	v1 := router.Group("/api/v1")
	{
		v1.GET("/wallet-config", handler.GetWalletConfigHandler)
		v1.GET("/connectors", handler.ListConnectorsHandler)
		v1.GET("/networks", handler.ListNetworksHandler)
		v1.GET("/networks/:identifier", handler.GetNetworkHandler)
		v1.GET("/networks/:identifier/status", handler.GetNetworkStatusHandler)
	}

	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	if opts.SwaggerEnabled {
		router.StaticFile("/docs/swagger.yaml", opts.SwaggerSpecFile)
		router.GET(opts.SwaggerPath+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/docs/swagger.yaml")))
	}

	return router
}

// ZapLoggerMiddleware writes one access log entry per request.
func ZapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
