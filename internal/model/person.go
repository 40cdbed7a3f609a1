package model

import "github.com/deppfellow/web420-api/internal/validation"

type Person struct {
	ID         string      `json:"_id,omitempty"`
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	Roles      []Role      `json:"roles"`
	Dependents []Dependent `json:"dependents"`
	BirthDate  string      `json:"birthDate"`
}

type Role struct {
	Text string `json:"text" validate:"required"`
}

type Dependent struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type CreatePersonRequest struct {
	FirstName  string      `json:"firstName" validate:"required"`
	LastName   string      `json:"lastName" validate:"required"`
	Roles      []Role      `json:"roles" validate:"required,dive"`
	Dependents []Dependent `json:"dependents" validate:"required,dive"`
	BirthDate  string      `json:"birthDate" validate:"required"`
}

func (r *CreatePersonRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreatePersonRequest) Person() Person {
	return Person{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Roles:      r.Roles,
		Dependents: r.Dependents,
		BirthDate:  r.BirthDate,
	}
}
