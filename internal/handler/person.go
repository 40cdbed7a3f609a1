package handler

import (
	"github.com/deppfellow/web420-api/internal/model"
	"github.com/deppfellow/web420-api/internal/server"
	"github.com/deppfellow/web420-api/internal/service"
	"github.com/labstack/echo/v4"
)

type PersonHandler struct {
	Handler
	persons *service.PersonService
}

func NewPersonHandler(s *server.Server, persons *service.PersonService) *PersonHandler {
	return &PersonHandler{
		Handler: NewHandler(s),
		persons: persons,
	}
}

func (h *PersonHandler) ListPersons(c echo.Context, _ *model.NoInput) ([]model.Person, error) {
	return h.persons.List(c.Request().Context())
}

func (h *PersonHandler) CreatePerson(c echo.Context, req *model.CreatePersonRequest) (*model.Person, error) {
	return h.persons.Create(c.Request().Context(), req.Person())
}
