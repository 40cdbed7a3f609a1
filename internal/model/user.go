package model

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/deppfellow/web420-api/internal/validation"
)

// User is the stored account. The bcrypt hash lives under "Password",
// the key the signup form has always used.
type User struct {
	ID           string         `json:"_id,omitempty"`
	UserName     string         `json:"userName"`
	Password     string         `json:"Password"`
	EmailAddress EmailAddresses `json:"emailAddress"`
}

// UserView is a User without its password hash.
type UserView struct {
	ID           string         `json:"_id"`
	UserName     string         `json:"userName"`
	EmailAddress EmailAddresses `json:"emailAddress"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID, UserName: u.UserName, EmailAddress: u.EmailAddress}
}

// EmailAddresses accepts either a single string or a list of strings
// and is always stored as a list.
type EmailAddresses []string

var errEmailAddressShape = errors.New("emailAddress must be a string or a list of strings")

func (e *EmailAddresses) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*e = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*e = EmailAddresses{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errEmailAddressShape
	}
	*e = many
	return nil
}

type SignupRequest struct {
	UserName     string         `json:"userName" validate:"required"`
	Password     string         `json:"Password" validate:"required,maxbytes=72"`
	EmailAddress EmailAddresses `json:"emailAddress" validate:"required,min=1,dive,required"`
}

func (r *SignupRequest) Validate() error {
	return validation.Struct(r)
}

type LoginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"Password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

type SignupResponse struct {
	Message string   `json:"message"`
	User    UserView `json:"user"`
}
