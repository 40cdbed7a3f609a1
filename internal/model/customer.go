package model

import "github.com/deppfellow/web420-api/internal/validation"

type Customer struct {
	ID        string    `json:"_id,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	UserName  string    `json:"userName"`
	Invoices  []Invoice `json:"invoices"`
}

type Invoice struct {
	Subtotal    float64    `json:"subtotal"`
	Tax         float64    `json:"tax"`
	DateCreated string     `json:"dateCreated"`
	DateShipped string     `json:"dateShipped"`
	LineItems   []LineItem `json:"lineItems"`
}

type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

type CreateCustomerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	UserName  string `json:"userName" validate:"required"`
}

func (r *CreateCustomerRequest) Validate() error {
	return validation.Struct(r)
}

// Customer starts with an empty invoice list.
func (r *CreateCustomerRequest) Customer() Customer {
	return Customer{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		UserName:  r.UserName,
		Invoices:  []Invoice{},
	}
}

type CustomerUserNameRequest struct {
	UserName string `param:"userName" validate:"required"`
}

func (r *CustomerUserNameRequest) Validate() error {
	return validation.Struct(r)
}

// Numeric fields are pointers so an explicit 0 passes `required`.
type LineItemRequest struct {
	Name     string   `json:"name" validate:"required"`
	Price    *float64 `json:"price" validate:"required"`
	Quantity *float64 `json:"quantity" validate:"required"`
}

type AddInvoiceRequest struct {
	UserName    string            `param:"userName" json:"-" validate:"required"`
	Subtotal    *float64          `json:"subtotal" validate:"required"`
	Tax         *float64          `json:"tax" validate:"required"`
	DateCreated string            `json:"dateCreated" validate:"required"`
	DateShipped string            `json:"dateShipped" validate:"required"`
	LineItems   []LineItemRequest `json:"lineItems" validate:"required,dive"`
}

func (r *AddInvoiceRequest) Validate() error {
	return validation.Struct(r)
}

func (r *AddInvoiceRequest) Invoice() Invoice {
	items := make([]LineItem, 0, len(r.LineItems))
	for _, item := range r.LineItems {
		items = append(items, LineItem{
			Name:     item.Name,
			Price:    float(item.Price),
			Quantity: float(item.Quantity),
		})
	}

	return Invoice{
		Subtotal:    float(r.Subtotal),
		Tax:         float(r.Tax),
		DateCreated: r.DateCreated,
		DateShipped: r.DateShipped,
		LineItems:   items,
	}
}
