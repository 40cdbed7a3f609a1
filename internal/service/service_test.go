package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/deppfellow/web420-api/internal/config"
	"github.com/deppfellow/web420-api/internal/docstore"
	"github.com/deppfellow/web420-api/internal/errs"
	"github.com/deppfellow/web420-api/internal/model"
	"github.com/deppfellow/web420-api/internal/repository"
	"github.com/deppfellow/web420-api/internal/server"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type recordingMailer struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (m *recordingMailer) EnqueueWelcomeEmail(_ context.Context, to []string, userName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, userName+" <"+to[0]+">")
	return m.err
}

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}},
		Logger: &logger,
	}
}

func expectHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.Status != status {
		t.Fatalf("status = %d, want %d (%s)", httpErr.Status, status, httpErr.Message)
	}
}

func TestSignupQueuesWelcomeEmail(t *testing.T) {
	repos := repository.New(docstore.NewMemory())
	mailer := &recordingMailer{}
	sessions := NewSessionService(newTestServer(), repos, mailer)

	user, err := sessions.Signup(context.Background(), &model.SignupRequest{
		UserName:     "jdoe",
		Password:     "Secret1!",
		EmailAddress: model.EmailAddresses{"jo@example.com"},
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Password == "Secret1!" {
		t.Fatal("password was not hashed")
	}
	if len(mailer.calls) != 1 || mailer.calls[0] != "jdoe <jo@example.com>" {
		t.Fatalf("mailer calls = %v", mailer.calls)
	}
}

func TestSignupSurvivesMailerFailure(t *testing.T) {
	repos := repository.New(docstore.NewMemory())
	sessions := NewSessionService(newTestServer(), repos, &recordingMailer{err: errors.New("redis down")})

	_, err := sessions.Signup(context.Background(), &model.SignupRequest{
		UserName:     "jdoe",
		Password:     "Secret1!",
		EmailAddress: model.EmailAddresses{"jo@example.com"},
	})
	if err != nil {
		t.Fatalf("signup failed because of the mailer: %v", err)
	}
}

func TestSignupRejectsTakenUserName(t *testing.T) {
	repos := repository.New(docstore.NewMemory())
	sessions := NewSessionService(newTestServer(), repos, nil)
	req := &model.SignupRequest{UserName: "jdoe", Password: "a", EmailAddress: model.EmailAddresses{"jo@example.com"}}

	if _, err := sessions.Signup(context.Background(), req); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	_, err := sessions.Signup(context.Background(), req)
	expectHTTPStatus(t, err, http.StatusUnauthorized)

	users, err := repos.Users.Find(context.Background())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("got %d users, want 1", len(users))
	}
}

func TestLoginRejectsCorruptHash(t *testing.T) {
	repos := repository.New(docstore.NewMemory())
	if _, err := repos.Users.Insert(context.Background(), model.User{UserName: "jdoe", Password: "plain"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	sessions := NewSessionService(newTestServer(), repos, nil)
	err := sessions.Login(context.Background(), &model.LoginRequest{UserName: "jdoe", Password: "plain"})

	var httpErr *errs.HTTPError
	if err == nil || errors.As(err, &httpErr) {
		t.Fatalf("expected a plain error for an unreadable hash, got %v", err)
	}
}

func TestComposerUpdateUnknownID(t *testing.T) {
	composers := NewComposerService(repository.New(docstore.NewMemory()))

	_, err := composers.Update(context.Background(), &model.UpdateComposerRequest{
		ID: docstore.NewID(), FirstName: "A", LastName: "B",
	})
	expectHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestComposerGetAndDeleteAbsent(t *testing.T) {
	composers := NewComposerService(repository.New(docstore.NewMemory()))
	id := docstore.NewID()

	got, err := composers.Get(context.Background(), id)
	if err != nil || got != nil {
		t.Fatalf("get = %v, %v", got, err)
	}

	deleted, err := composers.Delete(context.Background(), id)
	if err != nil || deleted != nil {
		t.Fatalf("delete = %v, %v", deleted, err)
	}
}

func TestTeamPlayersNeverNil(t *testing.T) {
	teams := NewTeamService(repository.New(docstore.NewMemory()))

	team, err := teams.Create(context.Background(), model.Team{Name: "Sharks", Mascot: "Shark"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	players, err := teams.Players(context.Background(), team.ID)
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if players == nil || len(players) != 0 {
		t.Fatalf("players = %#v", players)
	}

	_, err = teams.AddPlayer(context.Background(), docstore.NewID(), model.Player{FirstName: "Jo"})
	expectHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestCustomerInvoiceAppendsInOrder(t *testing.T) {
	customers := NewCustomerService(repository.New(docstore.NewMemory()))
	ctx := context.Background()

	if _, err := customers.Create(ctx, model.Customer{UserName: "jray"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, created := range []string{"2024-01-01", "2024-02-01"} {
		if _, err := customers.AddInvoice(ctx, "jray", model.Invoice{DateCreated: created}); err != nil {
			t.Fatalf("add invoice: %v", err)
		}
	}

	customer, err := customers.FindByUserName(ctx, "jray")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(customer.Invoices) != 2 || customer.Invoices[1].DateCreated != "2024-02-01" {
		t.Fatalf("invoices = %+v", customer.Invoices)
	}

	_, err = customers.AddInvoice(ctx, "nobody", model.Invoice{})
	expectHTTPStatus(t, err, http.StatusUnauthorized)
}
