package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/web420-api/internal/docstore"
	"github.com/deppfellow/web420-api/internal/errs"
	"github.com/deppfellow/web420-api/internal/middleware"
	"github.com/deppfellow/web420-api/internal/model"
	"github.com/deppfellow/web420-api/internal/repository"
	"github.com/deppfellow/web420-api/internal/server"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	MessageRegistered = "Registered User"
	MessageLoggedIn   = "User logged in"
)

// WelcomeMailer queues the welcome email sent after signup.
type WelcomeMailer interface {
	EnqueueWelcomeEmail(ctx context.Context, to []string, userName string) error
}

// SessionService registers users and checks credentials. No session or
// token is created: login is a stateless password check.
type SessionService struct {
	logger *zerolog.Logger
	users  *docstore.Collection[model.User]
	mailer WelcomeMailer
	cost   int
}

func NewSessionService(s *server.Server, repos *repository.Repositories, mailer WelcomeMailer) *SessionService {
	return &SessionService{
		logger: s.Logger,
		users:  repos.Users,
		mailer: mailer,
		cost:   s.Config.Auth.BcryptCost,
	}
}

func errUsernameTaken() error {
	return errs.NewUnauthorizedError("Username is already in use")
}

// Missing users and wrong passwords share one message so that login
// does not reveal which usernames exist.
func errInvalidCredentials() error {
	return errs.NewUnauthorizedError("Invalid username and/or password")
}

// Signup hashes the password, rejects a taken userName and stores the user.
func (s *SessionService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	_, err = s.users.FindOne(ctx, docstore.Eq("userName", req.UserName))
	switch {
	case err == nil:
		return nil, errUsernameTaken()
	case !errors.Is(err, docstore.ErrNotFound):
		return nil, err
	}

	user, err := s.users.Insert(ctx, model.User{
		UserName:     req.UserName,
		Password:     string(hash),
		EmailAddress: req.EmailAddress,
	})
	if err != nil {
		return nil, err
	}

	// Request-scoped so the lines carry the request id.
	log := middleware.LoggerFromContext(ctx, s.logger)
	log.Info().Str("user_id", user.ID).Msg("user registered")

	if s.mailer != nil {
		if err := s.mailer.EnqueueWelcomeEmail(ctx, user.EmailAddress, user.UserName); err != nil {
			log.Warn().Err(err).Str("user_id", user.ID).Msg("could not queue welcome email")
		}
	}

	return user, nil
}

// Login compares the password with the stored hash in constant time.
func (s *SessionService) Login(ctx context.Context, req *model.LoginRequest) error {
	user, err := s.users.FindOne(ctx, docstore.Eq("userName", req.UserName))
	if errors.Is(err, docstore.ErrNotFound) {
		return errInvalidCredentials()
	}
	if err != nil {
		return err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return errInvalidCredentials()
	}
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}

	return nil
}
