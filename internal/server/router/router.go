package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/appleprotools/resale/internal/config"
	"github.com/appleprotools/resale/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares. messaging
// may be nil when WhatsApp is not configured.
func New(dashboard *handlers.DashboardHandler, messaging *handlers.MessagingHandler, auth config.AuthConfig, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if messaging != nil {
		r.GET("/webhook", messaging.Verify)
		r.POST("/webhook", messaging.Receive)
	}

	api := r.Group("/api/v1")
	if auth.Enabled() {
		api.Use(gin.BasicAuth(gin.Accounts{auth.User: auth.Password}))
	}

	api.GET("/models", dashboard.ListModels)
	api.GET("/models/:model/price", dashboard.Quote)
	api.GET("/models/:model/forecast", dashboard.Forecast)
	api.GET("/margin", dashboard.Margin)
	api.POST("/trade-in", dashboard.TradeIn)
	api.GET("/repairs", dashboard.Repairs)

	api.GET("/inventory", dashboard.Inventory)
	api.GET("/inventory/:model/insight", dashboard.StockInsight)
	api.GET("/inventory/:model/similar", dashboard.SimilarModels)
	api.GET("/bundles", dashboard.Bundles)

	api.POST("/sales", dashboard.RegisterSale)
	api.GET("/sales", dashboard.ListSales)
	api.GET("/customers", dashboard.ListCustomers)
	api.GET("/crm/stale", dashboard.StaleCustomers)

	if messaging != nil {
		api.POST("/send-message", messaging.SendMessage)
	}

	logger.Info("router initialized", zap.Bool("auth", auth.Enabled()), zap.Bool("whatsapp", messaging != nil))

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
