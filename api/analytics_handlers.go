package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.Analytics())
}

// StatsHandler returns statistics about the current index snapshot.
func (api *API) StatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.Stats())
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-vector-search",
		"documents": api.engine.Stats().DocumentCount,
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
