package handler

import (
	"github.com/deppfellow/web420-api/internal/model"
	"github.com/deppfellow/web420-api/internal/server"
	"github.com/deppfellow/web420-api/internal/service"
	"github.com/labstack/echo/v4"
)

type TeamHandler struct {
	Handler
	teams *service.TeamService
}

func NewTeamHandler(s *server.Server, teams *service.TeamService) *TeamHandler {
	return &TeamHandler{
		Handler: NewHandler(s),
		teams:   teams,
	}
}

func (h *TeamHandler) CreateTeam(c echo.Context, req *model.CreateTeamRequest) (*model.Team, error) {
	return h.teams.Create(c.Request().Context(), req.Team())
}

func (h *TeamHandler) ListTeams(c echo.Context, _ *model.NoInput) ([]model.Team, error) {
	return h.teams.List(c.Request().Context())
}

func (h *TeamHandler) AddPlayer(c echo.Context, req *model.AddPlayerRequest) (*model.Team, error) {
	return h.teams.AddPlayer(c.Request().Context(), req.ID, req.Player())
}

func (h *TeamHandler) ListPlayers(c echo.Context, req *model.TeamIDRequest) ([]model.Player, error) {
	return h.teams.Players(c.Request().Context(), req.ID)
}

func (h *TeamHandler) DeleteTeam(c echo.Context, req *model.TeamIDRequest) (*model.Team, error) {
	return h.teams.Delete(c.Request().Context(), req.ID)
}
