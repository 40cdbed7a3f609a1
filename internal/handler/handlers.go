// Package handler is the HTTP layer between the router and the services.
//
// Handlers receive bound and validated requests, call a service and
// return the value to encode. Errors are left to the global error handler.
package handler

import (
	"io/fs"

	"github.com/deppfellow/web420-api/internal/server"
	"github.com/deppfellow/web420-api/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Composer *ComposerHandler
	Customer *CustomerHandler
	Person   *PersonHandler
	Team     *TeamHandler
	Session  *SessionHandler
}

// NewHandlers builds every handler. docs holds openapi.html and openapi.json.
func NewHandlers(s *server.Server, services *service.Services, docs fs.FS) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s, docs),
		Composer: NewComposerHandler(s, services.Composer),
		Customer: NewCustomerHandler(s, services.Customer),
		Person:   NewPersonHandler(s, services.Person),
		Team:     NewTeamHandler(s, services.Team),
		Session:  NewSessionHandler(s, services.Session),
	}
}
