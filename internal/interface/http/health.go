package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-api/pkg/response"
)

// Health reports liveness for load balancers and uptime checks.
func Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, "Library API is running")
}
