package service

import (
	"context"

	"github.com/deppfellow/web420-api/internal/docstore"
	"github.com/deppfellow/web420-api/internal/model"
	"github.com/deppfellow/web420-api/internal/repository"
)

type PersonService struct {
	persons *docstore.Collection[model.Person]
}

func NewPersonService(repos *repository.Repositories) *PersonService {
	return &PersonService{persons: repos.Persons}
}

func (s *PersonService) List(ctx context.Context) ([]model.Person, error) {
	return s.persons.Find(ctx)
}

func (s *PersonService) Create(ctx context.Context, person model.Person) (*model.Person, error) {
	if person.Roles == nil {
		person.Roles = []model.Role{}
	}
	if person.Dependents == nil {
		person.Dependents = []model.Dependent{}
	}
	return s.persons.Insert(ctx, person)
}
