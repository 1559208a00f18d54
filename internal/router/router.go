package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/hospitalq/bed-allocation/internal/handler"
	"github.com/hospitalq/bed-allocation/internal/middleware"
)

// RegisterRoutes registers routes that require neither authentication
// nor caching. Currently it exposes only a health check for load
// balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the operator login endpoint under /v1/auth.
// Login is the only unauthenticated command; everything issued from
// it is consumed by the protected groups below.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
}

// RegisterQueries registers the read-only query endpoints. They carry
// no auth so wall displays and dashboards can poll them, and they run
// behind the Redis response cache when one is configured.
func RegisterQueries(e *echo.Echo, b *handler.BedHandler, p *handler.PatientHandler, s *handler.StatsHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/beds", b.List)
	g.GET("/beds/available", b.ListAvailable)
	g.GET("/wards/summary", b.WardSummary)
	g.GET("/patients", p.List)
	g.GET("/stats", s.Get)
}

// RegisterCommands registers every mutating endpoint. All of them
// require a valid access token; maintenance toggles and direct status
// writes additionally require the ADMIN role. The purge middleware
// clears the query cache after each successful command so no reader
// observes pre-mutation statistics.
func RegisterCommands(e *echo.Echo, jwtSecret string, b *handler.BedHandler, p *handler.PatientHandler, a *handler.AllocationHandler, purge echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "STAFF"))
	if purge != nil {
		g.Use(purge)
	}
	g.POST("/patients", p.Create)
	g.DELETE("/patients/:id", p.Delete)
	g.POST("/queue/rank", p.Rank)
	g.POST("/queue/rank/reset", p.ResetRank)
	g.POST("/allocations", a.Place)
	g.POST("/beds/:id/release", b.Release)
	g.POST("/clock/tick", a.Tick)

	admin := g.Group("", middleware.RequireRole("ADMIN"))
	admin.POST("/beds/:id/maintenance", b.SetMaintenance)
	admin.DELETE("/beds/:id/maintenance", b.ClearMaintenance)
	admin.PUT("/beds/:id/status", b.SetStatus)
}
