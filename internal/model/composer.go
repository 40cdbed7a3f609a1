package model

import "github.com/deppfellow/web420-api/internal/validation"

type Composer struct {
	ID        string `json:"_id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ComposerIDRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *ComposerIDRequest) Validate() error {
	return validation.Struct(r)
}

type CreateComposerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

func (r *CreateComposerRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateComposerRequest) Composer() Composer {
	return Composer{FirstName: r.FirstName, LastName: r.LastName}
}

type UpdateComposerRequest struct {
	ID        string `param:"id" json:"-" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

func (r *UpdateComposerRequest) Validate() error {
	return validation.Struct(r)
}
