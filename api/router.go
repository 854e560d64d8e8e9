package api

import (
	"github.com/gin-gonic/gin"

	"github.com/realyassine/SouqFX/api/middleware"
	"github.com/realyassine/SouqFX/config"
	"github.com/realyassine/SouqFX/pkg/metrics"
)

// ControllerRegister is implemented by controllers that attach their
// routes to the versioned API group.
type ControllerRegister interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// MiddlewareRegister installs one extra middleware on the engine,
// after the built-in chain.
type MiddlewareRegister func(engine *gin.Engine)

// Route is a custom route registered outside the controllers.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Router wires middleware, controllers and custom routes onto a gin
// engine.
type Router struct {
	engine       *gin.Engine
	config       *config.Config
	controllers  []ControllerRegister
	customRoutes []Route
}

// NewRouter creates the engine with the default middleware chain plus
// any extra middleware.
func NewRouter(
	cfg *config.Config,
	controllers []ControllerRegister,
	middlewares []MiddlewareRegister,
	customRoutes []Route,
) *Router {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request ID must exist before
	// anything logs it.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	for _, m := range middlewares {
		m(engine)
	}

	return &Router{
		engine:       engine,
		config:       cfg,
		controllers:  controllers,
		customRoutes: customRoutes,
	}
}

// SetupRoutes attaches the controllers under /api/v1, then the custom
// routes, the info root and the metrics endpoint.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		for _, c := range r.controllers {
			c.RegisterRoutes(apiGroup)
		}
	}

	for _, route := range r.customRoutes {
		r.engine.Handle(route.Method, route.Path, route.Handler)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"catalog": "/api/v1/catalog",
			"health":  "/api/v1/health",
			"metrics": "/metrics",
		})
	})

	r.engine.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// GetEngine returns the configured gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
