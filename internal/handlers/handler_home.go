package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// registerOperationalRoutes registers the unauthenticated health and metrics routes.
func registerOperationalRoutes(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/health", getHealth)
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}
