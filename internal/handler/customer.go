package handler

import (
	"github.com/deppfellow/web420-api/internal/model"
	"github.com/deppfellow/web420-api/internal/server"
	"github.com/deppfellow/web420-api/internal/service"
	"github.com/labstack/echo/v4"
)

type CustomerHandler struct {
	Handler
	customers *service.CustomerService
}

func NewCustomerHandler(s *server.Server, customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		Handler:   NewHandler(s),
		customers: customers,
	}
}

func (h *CustomerHandler) CreateCustomer(c echo.Context, req *model.CreateCustomerRequest) (*model.Customer, error) {
	return h.customers.Create(c.Request().Context(), req.Customer())
}

func (h *CustomerHandler) AddInvoice(c echo.Context, req *model.AddInvoiceRequest) (*model.Customer, error) {
	return h.customers.AddInvoice(c.Request().Context(), req.UserName, req.Invoice())
}

// FindInvoices returns the whole customer document, invoices included.
func (h *CustomerHandler) FindInvoices(c echo.Context, req *model.CustomerUserNameRequest) (*model.Customer, error) {
	return h.customers.FindByUserName(c.Request().Context(), req.UserName)
}
