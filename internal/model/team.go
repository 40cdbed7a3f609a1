package model

import "github.com/deppfellow/web420-api/internal/validation"

type Team struct {
	ID      string   `json:"_id,omitempty"`
	Name    string   `json:"name"`
	Mascot  string   `json:"mascot"`
	Players []Player `json:"players"`
}

type Player struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Salary    float64 `json:"salary"`
}

type PlayerRequest struct {
	FirstName string   `json:"firstName" validate:"required"`
	LastName  string   `json:"lastName" validate:"required"`
	Salary    *float64 `json:"salary" validate:"required"`
}

func (r PlayerRequest) Player() Player {
	return Player{FirstName: r.FirstName, LastName: r.LastName, Salary: float(r.Salary)}
}

type CreateTeamRequest struct {
	Name    string          `json:"name" validate:"required"`
	Mascot  string          `json:"mascot" validate:"required"`
	Players []PlayerRequest `json:"players" validate:"required,dive"`
}

func (r *CreateTeamRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateTeamRequest) Team() Team {
	players := make([]Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p.Player())
	}
	return Team{Name: r.Name, Mascot: r.Mascot, Players: players}
}

type TeamIDRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *TeamIDRequest) Validate() error {
	return validation.Struct(r)
}

type AddPlayerRequest struct {
	ID        string   `param:"id" json:"-" validate:"required"`
	FirstName string   `json:"firstName" validate:"required"`
	LastName  string   `json:"lastName" validate:"required"`
	Salary    *float64 `json:"salary" validate:"required"`
}

func (r *AddPlayerRequest) Validate() error {
	return validation.Struct(r)
}

func (r *AddPlayerRequest) Player() Player {
	return PlayerRequest{FirstName: r.FirstName, LastName: r.LastName, Salary: r.Salary}.Player()
}
