// Package router builds the Echo instance: global middleware first, then
// the system routes and the /api routes.
package router

import (
	"io/fs"
	"net/http"

	"github.com/deppfellow/web420-api/internal/handler"
	"github.com/deppfellow/web420-api/internal/middleware"
	"github.com/deppfellow/web420-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires middleware and routes. docs is served under /static.
func NewRouter(s *server.Server, h *handler.Handlers, docs fs.FS) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id feeds the logger, the New Relic
	// transaction feeds both the logger and EnhanceTracing.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h, docs)
	registerAPIRoutes(router.Group("/api"), h, middlewares)

	return router
}

func registerAPIRoutes(api *echo.Group, h *handler.Handlers, middlewares *middleware.Middlewares) {
	composers := h.Composer
	api.GET("/composers", handler.Handle(composers.Handler, composers.ListComposers, http.StatusOK))
	api.GET("/composers/:id", handler.Handle(composers.Handler, composers.GetComposer, http.StatusOK))
	api.POST("/composers", handler.Handle(composers.Handler, composers.CreateComposer, http.StatusOK))
	api.PUT("/composers/:id", handler.Handle(composers.Handler, composers.UpdateComposer, http.StatusOK))
	api.DELETE("/composers/:id", handler.Handle(composers.Handler, composers.DeleteComposer, http.StatusOK))

	customers := h.Customer
	api.POST("/customers", handler.Handle(customers.Handler, customers.CreateCustomer, http.StatusOK))
	api.POST("/customers/:userName/invoices", handler.Handle(customers.Handler, customers.AddInvoice, http.StatusOK))
	api.GET("/customers/:userName/invoices", handler.Handle(customers.Handler, customers.FindInvoices, http.StatusOK))

	persons := h.Person
	api.GET("/persons", handler.Handle(persons.Handler, persons.ListPersons, http.StatusOK))
	api.POST("/persons", handler.Handle(persons.Handler, persons.CreatePerson, http.StatusOK))

	teams := h.Team
	api.POST("/teams", handler.Handle(teams.Handler, teams.CreateTeam, http.StatusOK))
	api.GET("/teams", handler.Handle(teams.Handler, teams.ListTeams, http.StatusOK))
	api.POST("/teams/:id/players", handler.Handle(teams.Handler, teams.AddPlayer, http.StatusOK))
	api.GET("/teams/:id/players", handler.Handle(teams.Handler, teams.ListPlayers, http.StatusOK))
	api.DELETE("/teams/:id", handler.Handle(teams.Handler, teams.DeleteTeam, http.StatusOK))

	sessions := h.Session
	api.POST("/signup", handler.Handle(sessions.Handler, sessions.Signup, http.StatusOK),
		middlewares.RateLimit.Limit("signup"))
	api.POST("/login", handler.Handle(sessions.Handler, sessions.Login, http.StatusOK),
		middlewares.RateLimit.Limit("login"))
}
