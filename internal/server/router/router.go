package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/domain/models"
	"github.com/mamadbah2/agrilink/internal/identity"
	"github.com/mamadbah2/agrilink/internal/server/handlers"
	"github.com/mamadbah2/agrilink/internal/server/middleware"
)

// Handlers bundles every HTTP adapter the router wires.
type Handlers struct {
	Yields        *handlers.YieldHandler
	Registry      *handlers.RegistryHandler
	Catalog       *handlers.CatalogHandler
	Reports       *handlers.ReportHandler
	Assistant     *handlers.AssistantHandler
	Notifications *handlers.NotificationHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, resolver identity.Resolver, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.Authenticate(resolver, logger))

	staffOnly := middleware.RequireRole(models.RoleAdmin, models.RoleStaff)

	yields := api.Group("/yields")
	{
		yields.GET("", h.Yields.List)
		yields.GET("/:id", h.Yields.Get)
		yields.POST("", h.Yields.Create)
		yields.PUT("/:id", staffOnly, h.Yields.Update)
		yields.DELETE("/:id", staffOnly, h.Yields.Delete)
	}

	farmers := api.Group("/farmers")
	{
		farmers.GET("", h.Registry.ListFarmers)
		farmers.GET("/:id", h.Registry.GetFarmer)
		farmers.POST("", staffOnly, h.Registry.CreateFarmer)
		farmers.PUT("/:id", staffOnly, h.Registry.UpdateFarmer)
		farmers.DELETE("/:id", staffOnly, h.Registry.DeleteFarmer)
	}

	farms := api.Group("/farms")
	{
		farms.GET("", h.Registry.ListFarms)
		farms.GET("/:id", h.Registry.GetFarm)
		farms.POST("", staffOnly, h.Registry.CreateFarm)
		farms.PUT("/:id", staffOnly, h.Registry.UpdateFarm)
		farms.DELETE("/:id", staffOnly, h.Registry.DeleteFarm)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.GET("/:id", h.Catalog.GetProduct)
		products.POST("", staffOnly, h.Catalog.CreateProduct)
		products.PUT("/:id", staffOnly, h.Catalog.UpdateProduct)
		products.DELETE("/:id", staffOnly, h.Catalog.DeleteProduct)
	}

	sectors := api.Group("/sectors")
	{
		sectors.GET("", h.Catalog.ListSectors)
		sectors.POST("", staffOnly, h.Catalog.CreateSector)
		sectors.PUT("/:id", staffOnly, h.Catalog.UpdateSector)
		sectors.DELETE("/:id", staffOnly, h.Catalog.DeleteSector)
	}

	associations := api.Group("/associations")
	{
		associations.GET("", h.Catalog.ListAssociations)
		associations.POST("", staffOnly, h.Catalog.CreateAssociation)
		associations.PUT("/:id", staffOnly, h.Catalog.UpdateAssociation)
		associations.DELETE("/:id", staffOnly, h.Catalog.DeleteAssociation)
	}

	reports := api.Group("/reports", staffOnly)
	{
		reports.GET("/volume-by-sector", h.Reports.VolumeBySector)
		reports.GET("/volume-by-product", h.Reports.VolumeByProduct)
		reports.GET("/volume-by-association", h.Reports.VolumeByAssociation)
		reports.GET("/status-breakdown", h.Reports.StatusBreakdown)
		reports.GET("/pending-queue", h.Reports.PendingQueue)
		reports.GET("/snapshots", h.Reports.SnapshotHistory)
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", h.Notifications.List)
		notifications.POST("/:id/read", h.Notifications.MarkRead)
	}

	assistant := api.Group("/assistant")
	{
		assistant.POST("/chat", h.Assistant.Chat)
		assistant.GET("/summary", h.Assistant.Summary)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

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
