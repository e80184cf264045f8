package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gcbaptista/go-vector-search/internal/logging"
	"github.com/gcbaptista/go-vector-search/internal/metrics"
	"github.com/gcbaptista/go-vector-search/services"
)

// API holds dependencies for API handlers, primarily the search engine.
type API struct {
	engine services.SearchEngine
	logger *logrus.Entry
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.SearchEngine, logger *logrus.Entry) *API {
	if logger == nil {
		logger = logging.Discard()
	}
	return &API{
		engine: engine,
		logger: logger,
	}
}

// RouteOptions configures the optional parts of the router.
type RouteOptions struct {
	Logger          *logrus.Entry
	Metrics         *metrics.Metrics // Enables /metrics and HTTP metrics when set
	MaxRequestBytes int64
}

// SetupRoutes defines all the routes for the search engine: the HTML page,
// the JSON API, health and metrics.
func SetupRoutes(router *gin.Engine, engine services.SearchEngine, opts RouteOptions) {
	apiHandler := NewAPI(engine, opts.Logger)

	router.Use(RequestIDMiddleware())
	if opts.Logger != nil {
		router.Use(LoggerMiddleware(opts.Logger))
	}
	if opts.Metrics != nil {
		router.Use(MetricsMiddleware(opts.Metrics))
	}
	router.Use(CORSMiddleware(), RequestSizeLimitMiddleware(opts.MaxRequestBytes))

	router.NoRoute(func(c *gin.Context) {
		SendError(c, http.StatusNotFound, ErrorCodeRouteNotFound, "Route '"+c.Request.URL.Path+"' not found")
	})

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// HTML page
	setupWebRoutes(router, apiHandler)

	apiRoutes := router.Group("/api")
	{
		// Document management routes
		docRoutes := apiRoutes.Group("/documents")
		{
			docRoutes.GET("", apiHandler.ListDocumentsHandler)                 // List documents in insertion order
			docRoutes.POST("", apiHandler.AddDocumentHandler)                  // Add a document
			docRoutes.POST("/bulk", apiHandler.BulkAddDocumentsHandler)        // Import in the background
			docRoutes.GET("/:documentId", apiHandler.GetDocumentHandler)       // Get specific document
			docRoutes.DELETE("/:documentId", apiHandler.DeleteDocumentHandler) // Delete specific document
		}

		// Search routes
		apiRoutes.GET("/search", apiHandler.SearchGetHandler)
		apiRoutes.POST("/search", apiHandler.SearchHandler)
		apiRoutes.POST("/multi-search", apiHandler.MultiSearchHandler)

		// Job routes
		apiRoutes.GET("/jobs", apiHandler.ListJobsHandler)
		apiRoutes.GET("/jobs/:jobId", apiHandler.GetJobHandler)

		apiRoutes.GET("/stats", apiHandler.StatsHandler)
		apiRoutes.GET("/analytics", apiHandler.GetAnalyticsHandler)
	}
}
