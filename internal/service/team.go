package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/web420-api/internal/docstore"
	"github.com/deppfellow/web420-api/internal/errs"
	"github.com/deppfellow/web420-api/internal/model"
	"github.com/deppfellow/web420-api/internal/repository"
)

const playersField = "players"

type TeamService struct {
	teams *docstore.Collection[model.Team]
}

func NewTeamService(repos *repository.Repositories) *TeamService {
	return &TeamService{teams: repos.Teams}
}

func invalidTeamID(id string) error {
	return errs.NewUnauthorizedError(fmt.Sprintf("Invalid teamId: %s", id))
}

func (s *TeamService) Create(ctx context.Context, team model.Team) (*model.Team, error) {
	if team.Players == nil {
		team.Players = []model.Player{}
	}
	return s.teams.Insert(ctx, team)
}

func (s *TeamService) List(ctx context.Context) ([]model.Team, error) {
	return s.teams.Find(ctx)
}

// AddPlayer appends player to the team's roster in a single store call.
func (s *TeamService) AddPlayer(ctx context.Context, teamID string, player model.Player) (*model.Team, error) {
	team, err := s.teams.Push(ctx, docstore.ByID(teamID), playersField, player)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, invalidTeamID(teamID)
	}
	return team, err
}

// Players returns the roster only, never nil.
func (s *TeamService) Players(ctx context.Context, teamID string) ([]model.Player, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, invalidTeamID(teamID)
	}
	if err != nil {
		return nil, err
	}

	if team.Players == nil {
		return []model.Player{}, nil
	}
	return team.Players, nil
}

func (s *TeamService) Delete(ctx context.Context, teamID string) (*model.Team, error) {
	team, err := s.teams.Delete(ctx, teamID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, invalidTeamID(teamID)
	}
	return team, err
}
