// Package model holds the stored documents and the per-route request
// payloads that are validated before reaching the services.
package model

import "github.com/deppfellow/web420-api/internal/validation"

// Collection names in the document store.
const (
	ComposersCollection = "composers"
	CustomersCollection = "customers"
	PersonsCollection   = "persons"
	TeamsCollection     = "teams"
	UsersCollection     = "users"
)

// NoInput is the payload of routes that take no path params or body.
type NoInput struct{}

var _ validation.Validatable = (*NoInput)(nil)

func (*NoInput) Validate() error { return nil }

// MessageResponse is the body of plain acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

func float(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
