// Package repository exposes one typed document collection per resource.
//
// Repositories only know how to reach the store; rules such as "an
// unknown id is a 401" live in the service layer.
package repository

import (
	"github.com/deppfellow/web420-api/internal/docstore"
	"github.com/deppfellow/web420-api/internal/model"
	"github.com/deppfellow/web420-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Composers *docstore.Collection[model.Composer]
	Customers *docstore.Collection[model.Customer]
	Persons   *docstore.Collection[model.Person]
	Teams     *docstore.Collection[model.Team]
	Users     *docstore.Collection[model.User]
}

// NewRepositories binds every collection to the server's document store.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.Store)
}

// New binds every collection to backend.
func New(backend docstore.Backend) *Repositories {
	return &Repositories{
		Composers: docstore.NewCollection[model.Composer](backend, model.ComposersCollection),
		Customers: docstore.NewCollection[model.Customer](backend, model.CustomersCollection),
		Persons:   docstore.NewCollection[model.Person](backend, model.PersonsCollection),
		Teams:     docstore.NewCollection[model.Team](backend, model.TeamsCollection),
		Users:     docstore.NewCollection[model.User](backend, model.UsersCollection),
	}
}
