// Package server wires services, handlers and middleware into the HTTP API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"budgetly/internal/config"
	"budgetly/internal/handlers"
	"budgetly/internal/middleware"
	"budgetly/internal/services"
)

// Services bundles the service layer the router depends on.
type Services struct {
	Categories services.CategoryServicer
	Months     services.MonthServicer
	Items      services.ItemServicer
	Import     services.ImportServicer
	Export     services.ExportServicer
	Audit      services.AuditServicer
}

// NewServices builds the service layer on db.
func NewServices(db *gorm.DB, cfg *config.Config, opts ...services.MonthOption) Services {
	months := services.NewMonthService(db, opts...)
	return Services{
		Categories: services.NewCategoryService(db),
		Months:     months,
		Items:      services.NewItemService(db, months),
		Import:     services.NewImportService(db, cfg.ImportMaxRecords),
		Export:     services.NewExportService(months),
		Audit:      services.NewAuditService(db),
	}
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	monthHandler := handlers.NewMonthHandler(svc.Months, svc.Audit)
	itemHandler := handlers.NewItemHandler(svc.Items, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories, svc.Audit)
	importHandler := handlers.NewImportHandler(svc.Import, svc.Audit)
	exportHandler := handlers.NewExportHandler(svc.Export)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Pipeline routes (API key auth, not bearer)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.ImportAPIKey))
	pipeline.POST("/import", importHandler.PipelineImport)

	api := v1.Group("")
	api.Use(middleware.OwnerMiddleware(cfg.JWTSecret))

	// Month routes
	months := api.Group("/months")
	months.GET("", monthHandler.ListMonths)
	months.GET("/current", monthHandler.GetCurrentMonth)
	months.GET("/:year/:month", monthHandler.GetMonth)
	months.DELETE("/:year/:month", monthHandler.DeleteMonth)
	months.GET("/:year/:month/previous", monthHandler.GetPreviousMonth)
	months.GET("/:year/:month/next", monthHandler.GetNextMonth)
	months.POST("/:year/:month/items", itemHandler.CreateItem)
	api.GET("/history", monthHandler.GetHistory)

	// Item routes
	items := api.Group("/items")
	items.GET("/:id", itemHandler.GetItem)
	items.PUT("/:id", itemHandler.UpdateItem)
	items.DELETE("/:id", itemHandler.DeleteItem)

	// Category routes
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Import routes
	api.POST("/import", importHandler.Import)
	api.POST("/import/file", importHandler.ImportFile)

	// Export routes
	export := api.Group("/export")
	export.GET("/months/:year/:month", exportHandler.ExportMonth)
	export.GET("/history", exportHandler.ExportHistory)

	return router
}

// WithCORS wraps handler with the configured cross-origin policy.
func WithCORS(cfg *config.Config, handler http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-API-Key", "X-Owner-ID", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(handler)
}

// New builds the http.Server for cfg.
func New(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      WithCORS(cfg, handler),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}
