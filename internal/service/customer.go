package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/web420-api/internal/docstore"
	"github.com/deppfellow/web420-api/internal/errs"
	"github.com/deppfellow/web420-api/internal/model"
	"github.com/deppfellow/web420-api/internal/repository"
)

const invoicesField = "invoices"

type CustomerService struct {
	customers *docstore.Collection[model.Customer]
}

func NewCustomerService(repos *repository.Repositories) *CustomerService {
	return &CustomerService{customers: repos.Customers}
}

func (s *CustomerService) Create(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	if customer.Invoices == nil {
		customer.Invoices = []model.Invoice{}
	}
	return s.customers.Insert(ctx, customer)
}

// AddInvoice appends invoice to the first customer with userName and
// returns the updated customer.
func (s *CustomerService) AddInvoice(ctx context.Context, userName string, invoice model.Invoice) (*model.Customer, error) {
	customer, err := s.customers.Push(ctx, docstore.Eq("userName", userName), invoicesField, invoice)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, errs.NewUnauthorizedError(fmt.Sprintf("Invalid userName: %s", userName))
	}
	return customer, err
}

// FindByUserName returns the customer with its invoices, or nil when no
// customer has userName.
func (s *CustomerService) FindByUserName(ctx context.Context, userName string) (*model.Customer, error) {
	customer, err := s.customers.FindOne(ctx, docstore.Eq("userName", userName))
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	return customer, err
}
