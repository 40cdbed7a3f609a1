// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated requests, applies the domain rules (unknown ids, taken
// usernames, credential checks) and calls the repositories. Store
// failures are returned untouched so the error handler can report them.
package service

import (
	"github.com/deppfellow/web420-api/internal/repository"
	"github.com/deppfellow/web420-api/internal/server"
)

type Services struct {
	Composer *ComposerService
	Customer *CustomerService
	Person   *PersonService
	Team     *TeamService
	Session  *SessionService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var mailer WelcomeMailer
	if s.Job != nil {
		mailer = s.Job
	}

	return &Services{
		Composer: NewComposerService(repos),
		Customer: NewCustomerService(repos),
		Person:   NewPersonService(repos),
		Team:     NewTeamService(repos),
		Session:  NewSessionService(s, repos, mailer),
	}
}
