package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andreslomelig/NovaFolio/internal/shared/config"
	"github.com/andreslomelig/NovaFolio/internal/shared/server/middleware"
	"github.com/andreslomelig/NovaFolio/internal/shared/server/respond"
)

// RouteRegistrar attaches a feature's routes to the API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Config      config.Config
	StorageRoot string
	Handlers    []RouteRegistrar
}

// NewRouter builds the gin engine: middleware chain, metrics, static file
// serving and the versioned API group.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(deps.Config.CORSAllowOrigin))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if deps.StorageRoot != "" {
		r.Static("/files", deps.StorageRoot)
	}

	api := r.Group("/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"status": "ok"})
	})
	for _, h := range deps.Handlers {
		h.RegisterRoutes(api)
	}
	return r
}

// Addr formats a listen address for the given port.
func Addr(port string) string {
	return ":" + port
}
