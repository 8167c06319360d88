// Package api wires the HTTP surface around the extraction core. Everything
// here is thin plumbing: transport, auth, rate limiting, and response
// envelopes; the decision logic lives in normalizer and extractor.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/centscape/preview/api/handler"
	"github.com/centscape/preview/api/middleware"
	"github.com/centscape/preview/cache"
	"github.com/centscape/preview/config"
	"github.com/centscape/preview/extractor"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → version header → RateLimit
//	Extraction routes: Auth (if enabled)
//
// Health, version, and server-info stay outside auth so monitoring probes
// and client bootstrap always work.
func NewRouter(ex *extractor.Extractor, cc *cache.Cache, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(versionHeader(cfg.Server.Environment))
	r.Use(middleware.RateLimit(cfg.RateLimit))

	r.GET("/health", handler.Health(cfg.Server.Environment, startTime))
	r.GET("/version", handler.Version(cfg.Server.Environment))
	r.GET("/server-info", handler.ServerInfo(cfg.Server.Environment))

	// Extraction routes — auth when configured.
	protected := r.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}

	protected.POST("/normalize-url", handler.Normalize())
	protected.POST("/extract-metadata", handler.Extract(ex, cc))
	protected.POST("/preview", handler.Preview(ex, cc))
	protected.GET("/proxy-image", handler.ProxyImage())

	return r
}

// versionHeader stamps every response with the API version and environment.
func versionHeader(environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", handler.VersionString())
		c.Header("X-Environment", environment)
		c.Next()
	}
}
