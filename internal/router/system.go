package router

import (
	"io/fs"
	"net/http"

	"github.com/deppfellow/web420-api/internal/handler"
	"github.com/deppfellow/web420-api/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes adds the health check and the API docs.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers, docs fs.FS) {
	if obs := s.Config.Observability; obs == nil || obs.HealthChecks.Enabled {
		r.GET("/status", h.Health.CheckHealth)
	}

	r.StaticFS("/static", docs)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/api-docs", h.OpenAPI.ServeOpenAPISpec)
	r.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/docs")
	})
}
