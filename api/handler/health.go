package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/centscape/preview/models"
)

// Version is the API version reported by /health, /version, and the
// X-API-Version response header.
const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)

// VersionString renders the semantic version.
func VersionString() string {
	return fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}

// Health returns a handler for GET /health.
func Health(environment string, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.OK(models.HealthResponse{
			Status:      "OK",
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Version:     VersionString(),
			Environment: environment,
			Uptime:      time.Since(startTime).Round(time.Second).String(),
		}))
	}
}

// Version returns a handler for GET /version.
func Version(environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.OK(models.VersionResponse{
			Version:     VersionString(),
			Major:       VersionMajor,
			Minor:       VersionMinor,
			Patch:       VersionPatch,
			Environment: environment,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}))
	}
}

// ServerInfo returns a handler for GET /server-info. Mobile clients use the
// reported base URL to configure themselves against the reachable host.
func ServerInfo(environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		c.JSON(http.StatusOK, models.ServerInfoResponse{
			BaseURL:     fmt.Sprintf("%s://%s", scheme, c.Request.Host),
			Version:     VersionString(),
			Environment: environment,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
